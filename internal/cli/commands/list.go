package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ctr/internal/config"
	"ctr/internal/discovery"
	"ctr/internal/domain"
	"ctr/internal/storage"
	"ctr/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	filter    *discovery.Filter
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	filter *discovery.Filter,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		filter:    filter,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	suites := lc.filter.FilterByName(lc.config.Suites, lc.config.Flags.Filter)
	if len(suites) == 0 {
		color.Yellow("No suites found")
		return nil
	}

	return lc.formatter.PrintSuiteList(suites, lc.config.Flags.ShowCases, lc.lastFailures())
}

// lastFailures returns the suites that did not complete in the last run, if any
func (lc *ListCommand) lastFailures() map[string]struct{} {
	results, err := lc.storage.Load()
	if err != nil {
		return nil
	}
	failed := make(map[string]struct{})
	for _, s := range results.Suites {
		if s.State != domain.StateCompleted {
			failed[s.Suite] = struct{}{}
		}
	}
	return failed
}
