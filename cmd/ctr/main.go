package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ctr/internal/cli"
	"ctr/internal/cli/commands"
	"ctr/internal/config"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "ctr",
		Short:         "Case table replayer",
		Long:          `Replays CSV acceptance-test tables against the club backend services, records every actual outcome next to its expectation and writes the marked-up result tables.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	logger, level, err := cli.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Create initial config with defaults; replaced once flags are parsed
	cfg := config.New()

	var flags cli.Flags

	cmds := commands.NewCommands(cfg, logger)
	cmds.Register(rootCmd, &flags, cfg, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		logger.Sync()
		os.Exit(1)
	}
}
