package execution

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"ctr/internal/casetable"
	"ctr/internal/config"
	"ctr/internal/domain"
	"ctr/internal/service"
	"ctr/internal/store"
	"ctr/internal/suite"
)

// Runner replays a single suite on a worker's database
type Runner struct {
	config *config.Config
	logger *zap.Logger
	clock  func() time.Time
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{config: cfg, logger: logger, clock: time.Now}
}

// Run executes every case of def against the database of workerID
func (r *Runner) Run(ctx context.Context, def suite.Definition, workerID int) domain.SuiteReport {
	start := time.Now()
	report := domain.SuiteReport{
		Suite:    def.Name,
		File:     r.config.CasePath(def.File),
		WorkerID: workerID,
	}

	err := r.run(ctx, def, workerID, &report)
	report.Duration = time.Since(start)

	var failure *domain.CaseFailure
	switch {
	case err == nil:
		report.State = domain.StateCompleted
	case errors.As(err, &failure):
		report.State = domain.StateAborted
		report.Failure = failure
	default:
		report.State = domain.StateErrored
		report.Error = err
	}
	return report
}

func (r *Runner) run(ctx context.Context, def suite.Definition, workerID int, report *domain.SuiteReport) error {
	op, ok := suite.LookupOperation(def.Operation)
	if !ok {
		return fmt.Errorf("suite %s: unknown operation %q", def.Name, def.Operation)
	}

	table, err := casetable.Load(report.File)
	if err != nil {
		return err
	}
	report.Total = table.Len() - 1

	var fixture *store.Fixture
	if def.Fixture != "" {
		fixture, err = store.LoadFixture(r.config.CasePath(def.Fixture))
		if err != nil {
			return err
		}
	}

	db, err := r.openDatabase(ctx, workerID)
	if err != nil {
		return err
	}
	defer db.Close()

	operator := def.Operator
	if r.config.Operator != "" {
		operator = r.config.Operator
	}
	resultPath := def.ResultPath(r.config.GetCaseDir())

	invoker := suite.NewServiceInvoker(db, op, fixture, service.NewImageStore(r.config.GetImageDir()))
	ctrl, err := NewController(table, def.Layout, invoker, ControllerOptions{
		Suite:          def.Name,
		File:           report.File,
		Operator:       operator,
		PersistOnAbort: r.config.Flags.PersistOnAbort,
		Persist: func(t *casetable.Table) error {
			return t.Persist(resultPath)
		},
		Clock:  r.clock,
		Logger: r.logger.With(zap.Int("worker", workerID)),
	})
	if err != nil {
		return fmt.Errorf("suite %s: %w", def.Name, err)
	}

	err = ctrl.Run(ctx)
	report.Executed = ctrl.Executed()
	report.Passed = ctrl.Passed()
	if ctrl.Persisted() {
		report.ResultFile = resultPath
	}
	return err
}

func (r *Runner) openDatabase(ctx context.Context, workerID int) (*sql.DB, error) {
	dialect := r.config.Dialect()
	dsn := r.config.DSN(workerID)
	if dialect == store.SQLite {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := store.Open(ctx, dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("worker %d: %w", workerID, err)
	}
	if err := store.Migrate(ctx, db, dialect); err != nil {
		db.Close()
		return nil, fmt.Errorf("worker %d: %w", workerID, err)
	}
	return db, nil
}
