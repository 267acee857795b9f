package execution

import (
	"context"
	"time"

	"ctr/internal/domain"
	"ctr/internal/suite"
)

// Executor runs suites and returns their reports
type Executor interface {
	Execute(ctx context.Context, suites []suite.Definition) ([]domain.SuiteReport, time.Duration, error)
}

// SuiteRunner runs one suite on a worker
type SuiteRunner interface {
	Run(ctx context.Context, def suite.Definition, workerID int) domain.SuiteReport
}

// Progress receives suite counts as workers finish
type Progress interface {
	Update(passed, failed int)
	Finish()
}

var (
	_ Executor    = (*WorkerPool)(nil)
	_ SuiteRunner = (*Runner)(nil)
	_ Scheduler   = (*RoundRobinScheduler)(nil)
)
