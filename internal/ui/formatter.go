package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/fatih/color"

	"ctr/internal/config"
	"ctr/internal/discovery"
	"ctr/internal/domain"
	"ctr/internal/storage"
	"ctr/internal/suite"
)

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
)

// Formatter formats and displays output
type Formatter struct {
	config  *config.Config
	parser  *discovery.Parser
	storage storage.Storage
	out     io.Writer
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config, parser *discovery.Parser, st storage.Storage) *Formatter {
	return &Formatter{
		config:  cfg,
		parser:  parser,
		storage: st,
		out:     color.Output,
	}
}

// SetOutput redirects the formatter's output
func (f *Formatter) SetOutput(w io.Writer) {
	f.out = w
}

// PrintMetaStats reads and displays meta statistics of the last run
func (f *Formatter) PrintMetaStats() error {
	output, err := f.storage.Load()
	if err != nil {
		return err
	}
	meta := output.Meta

	fmt.Fprint(f.out, "\n")
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                   Case Replay Statistics                      ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(f.out)

	const sep = "├─────────────────────────────────┼─────────────────────────────┤"
	rows := []struct {
		label string
		c     *color.Color
		value string
	}{
		{"Total Suites", white, fmt.Sprint(meta.TotalSuites)},
		{"Passed Suites", green, fmt.Sprint(meta.PassedSuites)},
		{"Failed Suites", red, fmt.Sprint(meta.FailedSuites)},
		{"Errored Suites", red, fmt.Sprint(meta.ErroredSuites)},
		{"Cases Passed", green, fmt.Sprintf("%d/%d", meta.PassedCases, meta.TotalCases)},
		{"Duration", white, fmt.Sprintf("%.2fs", meta.DurationSeconds)},
		{"Workers", white, fmt.Sprint(meta.Workers)},
		{"Timestamp", white, meta.Timestamp},
	}

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ ", row.label)
		row.c.Fprintf(f.out, "%-27s │\n", row.value)
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, sep)
		}
	}
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(f.out)
	if meta.FailedSuites == 0 && meta.ErroredSuites == 0 {
		green.Fprintln(f.out, "✓ All suites passed!")
		return nil
	}

	red.Fprintf(f.out, "✗ %d suite(s) failed, %d errored\n", meta.FailedSuites, meta.ErroredSuites)
	fmt.Fprintln(f.out)
	f.printSuiteTree(output)
	return nil
}

// printSuiteTree prints the suites that did not complete with their failing case
func (f *Formatter) printSuiteTree(output *domain.RunSummary) {
	failures := make(map[string]domain.CaseFailure, len(output.Details))
	for _, d := range output.Details {
		failures[d.Suite] = d
	}

	var broken []domain.SuiteSummary
	for _, s := range output.Suites {
		if s.State != domain.StateCompleted {
			broken = append(broken, s)
		}
	}
	sort.Slice(broken, func(i, j int) bool { return broken[i].Suite < broken[j].Suite })

	for i, s := range broken {
		last := i == len(broken)-1
		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}
		yellow.Fprintf(f.out, "%s%s (%s)\n", branch, s.Suite, f.relative(s.File))

		if failure, ok := failures[s.Suite]; ok {
			red.Fprintf(f.out, "%s└── row %d: expected %q, got %q\n", indent, failure.Row, failure.Expected, failure.Actual)
		} else if s.Error != "" {
			red.Fprintf(f.out, "%s└── %s\n", indent, s.Error)
		}
	}
}

// PrintSuiteList prints the configured suites, optionally with their cases.
// failed marks suites that did not complete in the last run.
func (f *Formatter) PrintSuiteList(defs []suite.Definition, showCases bool, failed map[string]struct{}) error {
	suites := f.parser.Suites(defs, f.config.CasePath)
	green.Fprintf(f.out, "Found %d suite(s):\n\n", len(suites))

	for i, s := range suites {
		last := i == len(suites)-1
		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}

		failMarker := ""
		if _, ok := failed[s.Name]; ok {
			failMarker = " " + red.Sprint("[F]")
		}
		count := fmt.Sprintf("%d case(s)", s.Cases)
		if s.Cases < 0 {
			count = red.Sprint("unreadable")
		}
		cyan.Fprintf(f.out, "%s%s  %s  %s%s\n", branch, s.Name, f.relative(s.Path), count, failMarker)

		if !showCases {
			continue
		}
		rows, err := f.parser.FindCases(s.Path, defs[i].Layout)
		if err != nil {
			red.Fprintf(f.out, "%s└── %v\n", indent, err)
			continue
		}
		if len(rows) == 0 {
			fmt.Fprintf(f.out, "%s└── %s\n", indent, red.Sprint("(no cases found)"))
		}
		names := defs[i].Layout.InputNames()
		for j, row := range rows {
			prefix := indent + "├── "
			if j == len(rows)-1 {
				prefix = indent + "└── "
			}
			fmt.Fprintf(f.out, "%s%s\n", prefix, yellow.Sprint(formatCase(row, names)))
		}
		if !last {
			fmt.Fprintln(f.out)
		}
	}

	tables, err := discovery.NewScanner(f.config.PathsToIgnore).Scan(f.config.GetCaseDir())
	if err != nil {
		fmt.Fprintln(f.out)
		yellow.Fprintf(f.out, "Skipping table scan: %v\n", err)
		return nil
	}
	if rest := discovery.Unreferenced(tables, suites); len(rest) > 0 {
		fmt.Fprintln(f.out)
		yellow.Fprintf(f.out, "Tables without a suite (%d):\n", len(rest))
		for _, t := range rest {
			fmt.Fprintf(f.out, "  %s\n", f.relative(t))
		}
	}
	return nil
}

func formatCase(row domain.CaseRow, names []string) string {
	s := fmt.Sprintf("#%d", row.Row)
	for i, name := range names {
		s += fmt.Sprintf(" %s=%q", name, row.Inputs[i])
	}
	return s + " => " + row.Expected
}

func (f *Formatter) relative(path string) string {
	if rel, err := filepath.Rel(f.config.ProjectPath, path); err == nil {
		return rel
	}
	return path
}
