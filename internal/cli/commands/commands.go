package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ctr/internal/cli"
	"ctr/internal/config"
	"ctr/internal/discovery"
	"ctr/internal/execution"
	"ctr/internal/migration"
	"ctr/internal/storage"
	"ctr/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run     *RunCommand
	List    *ListCommand
	Migrate *MigrateCommand
	Faills  *FaillsCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config, logger *zap.Logger) *Commands {
	filter := discovery.NewFilter()
	caseParser := discovery.NewParser()
	runner := execution.NewRunner(cfg, logger)
	scheduler := execution.NewRoundRobinScheduler()
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg, caseParser, jsonStorage)
	dbManager := migration.NewDatabaseManager(cfg)
	migrator := migration.NewSchemaMigrator(cfg, dbManager, logger)
	errorViewer := ui.NewErrorViewer(cfg, jsonStorage)

	return &Commands{
		Run:     NewRunCommand(cfg, filter, runner, scheduler, jsonStorage, formatter, migrator, errorViewer, logger),
		List:    NewListCommand(cfg, filter, formatter, jsonStorage),
		Migrate: NewMigrateCommand(cfg, migrator),
		Faills:  NewFaillsCommand(cfg, jsonStorage, errorViewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config, level zap.AtomicLevel) {
	// Reload config after flags are parsed; commands share the pointer
	prepare := func(cmd *cobra.Command, args []string) error {
		cli.SetVerbose(level, flags.Verbose)
		loaded, err := config.Load(flags.ToConfigFlags())
		if err != nil {
			return err
		}
		*cfg = *loaded
		return nil
	}

	rootCmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "Path to the TOML configuration file (default ./ctr.toml)")
	rootCmd.PersistentFlags().BoolVar(&flags.Verbose, "verbose", false, "Log every case at debug level")

	// Run command
	runCmd := &cobra.Command{
		Use:     "run [suite...]",
		Short:   "Replay case tables in parallel",
		Long:    "Replay every case of the selected suites against the services and record the outcomes in result tables",
		RunE:    c.Run.Execute,
		PreRunE: prepare,
	}
	runCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 0, "Number of workers to use (default from config, 4)")
	runCmd.Flags().BoolVarP(&flags.Migrate, "migrate", "m", false, "Run migrations before replaying")
	runCmd.Flags().BoolVar(&flags.Fresh, "fresh", false, "Drop existing tables when migrating")
	runCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter suites by name pattern (supports wildcards, e.g., 'add_*' or '*appeal*')")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop scheduling suites after the first failure")
	runCmd.Flags().BoolVar(&flags.PersistOnAbort, "persist-on-abort", false, "Write the result table even when a case fails")
	runCmd.Flags().StringVar(&flags.Operator, "operator", "", "Operator id recorded for every case, overriding the suite's")
	runCmd.Flags().BoolVar(&flags.OpenFaills, "open-faills", false, "Open the faills viewer when the run finishes with failures")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List configured suites",
		Long:    "List the configured suites with their case counts and any case tables no suite uses",
		RunE:    c.List.Execute,
		PreRunE: prepare,
	}
	listCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter suites by name pattern (supports wildcards, e.g., 'add_*' or '*appeal*')")
	listCmd.Flags().BoolVarP(&flags.ShowCases, "cases", "c", false, "Show every case of each suite")
	rootCmd.AddCommand(listCmd)

	// Migrate command
	migrateCmd := &cobra.Command{
		Use:     "migrate",
		Short:   "Create the schema in every worker database",
		Long:    "Create worker databases when needed and apply the schema to all of them in parallel",
		RunE:    c.Migrate.Execute,
		PreRunE: prepare,
	}
	migrateCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 0, "Number of workers to prepare (default from config, 4)")
	migrateCmd.Flags().BoolVar(&flags.Fresh, "fresh", false, "Drop existing tables first")
	rootCmd.AddCommand(migrateCmd)

	// Faills command
	faillsCmd := &cobra.Command{
		Use:     "faills",
		Short:   "View case failures interactively",
		Long:    "Display case failures from the last run in an interactive viewer",
		RunE:    c.Faills.Execute,
		PreRunE: prepare,
	}
	rootCmd.AddCommand(faillsCmd)
}
