package migration

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ctr/internal/config"
	"ctr/internal/domain"
	"ctr/internal/store"
)

// SchemaMigrator applies the application schema to every worker database
type SchemaMigrator struct {
	config          *config.Config
	databaseManager *DatabaseManager
	logger          *zap.Logger
	progressWriter  io.Writer
}

// NewSchemaMigrator creates a new SchemaMigrator
func NewSchemaMigrator(cfg *config.Config, dbManager *DatabaseManager, logger *zap.Logger) *SchemaMigrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchemaMigrator{
		config:          cfg,
		databaseManager: dbManager,
		logger:          logger,
		progressWriter:  os.Stderr,
	}
}

// SetProgressWriter redirects the progress bar
func (sm *SchemaMigrator) SetProgressWriter(w io.Writer) {
	sm.progressWriter = w
}

// Run migrates every worker database in parallel. With fresh set, existing
// tables are dropped first.
func (sm *SchemaMigrator) Run(ctx context.Context, workerCount int, fresh bool) error {
	color.Cyan("\n╔════════════════════════════════════════════════════════════╗")
	color.Cyan("║               Running Database Migrations                  ║")
	color.Cyan("╚════════════════════════════════════════════════════════════╝\n")

	workers, err := sm.prepare(ctx, workerCount)
	if err != nil {
		return err
	}
	if len(workers) == 0 {
		return fmt.Errorf("no test databases available")
	}

	dialect := sm.config.Dialect()
	statementCount := len(store.Schema(dialect))
	if fresh {
		statementCount++
	}
	totalProgress := len(workers) * statementCount

	color.White("Workers: %d | Driver: %s | Statements: %d\n\n", len(workers), dialect, statementCount)

	bar := sm.newProgressBar(totalProgress)
	var progressMu sync.Mutex
	completed := 0
	step := func() {
		progressMu.Lock()
		defer progressMu.Unlock()
		completed++
		bar.Set(completed)
		bar.Describe(color.CyanString("Migrating: ") +
			color.GreenString("[completed: %d/%d]", completed, totalProgress))
	}

	results := make([]domain.MigrationResult, len(workers))
	startTime := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for i, workerID := range workers {
		g.Go(func() error {
			results[i] = sm.migrateWorker(gctx, workerID, fresh, step)
			return results[i].Error
		})
	}
	groupErr := g.Wait()
	bar.Finish()

	duration := time.Since(startTime)

	fmt.Print("\n")
	var failed []domain.MigrationResult
	for _, r := range results {
		if !r.Success {
			failed = append(failed, r)
		}
	}
	if groupErr == nil {
		color.Green("✓ Migrations completed successfully for all %d workers\n", len(workers))
		color.White("Duration: %s\n", duration.Round(time.Millisecond))
		return nil
	}

	color.Red("✗ Migration failed for %d worker(s)\n", len(failed))
	for _, r := range failed {
		if r.Error != nil {
			color.Red("  Worker %d (DB: %s): %v\n", r.WorkerID, r.Database, r.Error)
		}
	}
	return fmt.Errorf("migration failed: %w", groupErr)
}

func (sm *SchemaMigrator) prepare(ctx context.Context, workerCount int) ([]int, error) {
	if sm.config.Dialect() == store.MySQL {
		workers, err := sm.databaseManager.CheckAndCreateDatabases(ctx, workerCount)
		if err != nil {
			return nil, fmt.Errorf("failed to check databases: %w", err)
		}
		return workers, nil
	}

	workers := make([]int, 0, workerCount)
	for i := 1; i <= workerCount; i++ {
		if err := os.MkdirAll(filepath.Dir(sm.config.DSN(i)), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		workers = append(workers, i)
	}
	return workers, nil
}

func (sm *SchemaMigrator) migrateWorker(ctx context.Context, workerID int, fresh bool, step func()) domain.MigrationResult {
	dialect := sm.config.Dialect()
	result := domain.MigrationResult{
		WorkerID: workerID,
		Database: sm.config.GetDatabaseName(workerID),
	}

	db, err := store.Open(ctx, dialect, sm.config.DSN(workerID))
	if err != nil {
		result.Error = err
		return result
	}
	defer db.Close()

	if fresh {
		if err := store.Drop(ctx, db); err != nil {
			result.Error = err
			return result
		}
		result.Statements++
		step()
	}

	for i, stmt := range store.Schema(dialect) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			result.Error = fmt.Errorf("running migration %d: %w", i+1, err)
			return result
		}
		result.Statements++
		step()
	}

	sm.logger.Debug("worker database migrated",
		zap.Int("worker", workerID),
		zap.String("database", result.Database),
		zap.Int("statements", result.Statements))
	result.Success = true
	return result
}

func (sm *SchemaMigrator) newProgressBar(total int) *progressbar.ProgressBar {
	w := sm.progressWriter
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(
			color.CyanString("Migrating: ")+
				color.GreenString("[completed: 0/%d]", total),
		),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(w),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
}
