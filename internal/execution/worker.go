package execution

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"ctr/internal/domain"
	"ctr/internal/suite"
)

// WorkerPool runs suites in parallel. Suites assigned to the same worker run
// one after another on that worker's database.
type WorkerPool struct {
	workers   int
	runner    SuiteRunner
	scheduler Scheduler
	progress  Progress
	failFast  bool
	logger    *zap.Logger
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(workers int, runner SuiteRunner, scheduler Scheduler, logger *zap.Logger) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkerPool{
		workers:   workers,
		runner:    runner,
		scheduler: scheduler,
		logger:    logger,
	}
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress Progress) {
	wp.progress = progress
}

// SetFailFast stops scheduling new suites after the first one that does not complete
func (wp *WorkerPool) SetFailFast(failFast bool) {
	wp.failFast = failFast
}

// Execute runs suites and returns one report per suite that was started,
// in the order they were given.
func (wp *WorkerPool) Execute(ctx context.Context, suites []suite.Definition) ([]domain.SuiteReport, time.Duration, error) {
	if len(suites) == 0 {
		return nil, 0, nil
	}

	order := make(map[string]int, len(suites))
	for i, def := range suites {
		order[def.Name] = i
	}
	reports := make([]*domain.SuiteReport, len(suites))

	var mu sync.Mutex
	var passed, failed int
	var stopped atomic.Bool
	startTime := time.Now()

	var wg sync.WaitGroup
	for i, assigned := range wp.scheduler.Schedule(suites, wp.workers) {
		wg.Add(1)
		go func(workerID int, assigned []suite.Definition) {
			defer wg.Done()
			for _, def := range assigned {
				if ctx.Err() != nil || stopped.Load() {
					return
				}
				wp.logger.Debug("worker picked suite", zap.Int("worker", workerID), zap.String("suite", def.Name))
				report := wp.runner.Run(ctx, def, workerID)

				mu.Lock()
				reports[order[def.Name]] = &report
				if report.State == domain.StateCompleted {
					passed++
				} else {
					failed++
					if wp.failFast {
						stopped.Store(true)
					}
				}
				if wp.progress != nil {
					wp.progress.Update(passed, failed)
				}
				mu.Unlock()
			}
		}(i+1, assigned)
	}
	wg.Wait()

	if wp.progress != nil {
		wp.progress.Finish()
	}

	allReports := make([]domain.SuiteReport, 0, len(suites))
	for _, r := range reports {
		if r != nil {
			allReports = append(allReports, *r)
		}
	}
	return allReports, time.Since(startTime), nil
}
