package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ctr/internal/config"
	"ctr/internal/discovery"
	"ctr/internal/domain"
	"ctr/internal/execution"
	"ctr/internal/migration"
	"ctr/internal/storage"
	"ctr/internal/suite"
	"ctr/internal/ui"
)

// ErrSuitesFailed is returned when at least one suite did not complete
var ErrSuitesFailed = errors.New("suites failed")

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	filter    *discovery.Filter
	runner    execution.SuiteRunner
	scheduler execution.Scheduler
	storage   storage.Storage
	formatter *ui.Formatter
	migrator  migration.Migrator
	viewer    ui.Viewer
	logger    *zap.Logger
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	filter *discovery.Filter,
	runner execution.SuiteRunner,
	scheduler execution.Scheduler,
	st storage.Storage,
	formatter *ui.Formatter,
	migrator migration.Migrator,
	viewer ui.Viewer,
	logger *zap.Logger,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		filter:    filter,
		runner:    runner,
		scheduler: scheduler,
		storage:   st,
		formatter: formatter,
		migrator:  migrator,
		viewer:    viewer,
		logger:    logger,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if rc.config.Flags.Migrate {
		if err := rc.migrator.Run(ctx, rc.config.Processors, rc.config.Flags.Fresh); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println()
	}

	suites, err := rc.selectSuites(args)
	if err != nil {
		return err
	}
	if len(suites) == 0 {
		color.Yellow("No suites to execute")
		return nil
	}

	pool := execution.NewWorkerPool(rc.config.Processors, rc.runner, rc.scheduler, rc.logger)
	pool.SetFailFast(rc.config.Flags.FailFast)
	pool.SetProgress(ui.NewProgressBar(len(suites)))

	reports, duration, err := pool.Execute(ctx, suites)
	if err != nil {
		return err
	}

	if err := rc.storage.Save(reports, duration, rc.config.Processors); err != nil {
		return fmt.Errorf("failed to save run summary: %w", err)
	}
	if err := rc.formatter.PrintMetaStats(); err != nil {
		return err
	}

	failed := 0
	for _, r := range reports {
		if r.State != domain.StateCompleted {
			failed++
		}
	}
	if failed == 0 {
		return nil
	}

	if rc.config.Flags.OpenFaills {
		results, err := rc.storage.Load()
		if err != nil {
			return err
		}
		if err := rc.viewer.View(results); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: %d of %d", ErrSuitesFailed, failed, len(reports))
}

// selectSuites narrows the configured suites to the named ones, then by pattern
func (rc *RunCommand) selectSuites(names []string) ([]suite.Definition, error) {
	suites, unknown := rc.filter.FilterByNames(rc.config.Suites, names)
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown suite(s): %s", strings.Join(unknown, ", "))
	}
	return rc.filter.FilterByName(suites, rc.config.Flags.Filter), nil
}
