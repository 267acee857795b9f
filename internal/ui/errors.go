package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"ctr/internal/config"
	"ctr/internal/domain"
	"ctr/internal/storage"
)

// ErrorViewer displays case failures in an interactive TUI
type ErrorViewer struct {
	config  *config.Config
	storage storage.Storage
}

// NewErrorViewer creates a new ErrorViewer
func NewErrorViewer(cfg *config.Config, st storage.Storage) *ErrorViewer {
	return &ErrorViewer{
		config:  cfg,
		storage: st,
	}
}

// View displays case failures in an interactive TUI
func (ev *ErrorViewer) View(results *domain.RunSummary) error {
	if len(results.Details) == 0 {
		color.Green("✓ No case failures found!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	for i := range results.Details {
		list.AddItem(listItemText(results.Details[i], i), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	// Shows suite and row of the selected failure
	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	// list on left (1/3), details on right (2/3)
	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(fmt.Sprintf(" Case Failures (%d total, %d unresolved) | Use ↑↓ to navigate, [yellow]R[white] to mark resolved, → to view details, ← to go back, Ctrl+C to exit ",
			len(results.Details), countUnresolved(results.Details)))
	}
	updateHeader()

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(results.Details) {
			failure := results.Details[index]
			statsView.SetText(formatFailureStats(failure, index+1))
			detailsView.SetText(ev.formatFailureDetails(failure))
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyDown:
			return event
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if toggleResolved(results, index) {
					list.SetItemText(index, listItemText(results.Details[index], index), "")
					updateHeader()
					updateDetails()
					if err := ev.storage.SaveOutput(results); err != nil {
						statsView.SetText(fmt.Sprintf("[red]save failed: %v[white]", err))
					}
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(
			tview.NewBox().SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
				return x, y, width, height
			}),
			1, 0, false,
		).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

// toggleResolved flips the resolved flag of a failure, reporting whether index was valid
func toggleResolved(results *domain.RunSummary, index int) bool {
	if index < 0 || index >= len(results.Details) {
		return false
	}
	results.Details[index].Resolved = !results.Details[index].Resolved
	return true
}

func countUnresolved(failures []domain.CaseFailure) int {
	count := 0
	for _, f := range failures {
		if !f.Resolved {
			count++
		}
	}
	return count
}

func listItemText(failure domain.CaseFailure, index int) string {
	name := fmt.Sprintf("%s #%d", failure.Suite, failure.Row)
	if failure.Resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, name)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, name)
}

// formatFailureDetails formats a case failure using tview color tags
func (ev *ErrorViewer) formatFailureDetails(failure domain.CaseFailure) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "[red]✗ Suite: %s[white]\n\n", failure.Suite)
	fmt.Fprintf(w, "[cyan]File: %s[white]\n", failure.File)
	fmt.Fprintf(w, "[yellow]Row: %d[white]\n\n", failure.Row)

	fmt.Fprintf(w, "[yellow]Expected:[white]\n%s\n\n", tview.Escape(failure.Expected))
	fmt.Fprintf(w, "[yellow]Actual:[white]\n%s\n\n", tview.Escape(failure.Actual))
	if failure.Kind != "" {
		fmt.Fprintf(w, "[yellow]Outcome kind:[white]\t%s\n", failure.Kind)
	}
	if failure.Resolved {
		fmt.Fprintf(w, "[gray]marked resolved[white]\n")
	}

	w.Flush()
	return builder.String()
}

// formatFailureStats formats the stats header for a case failure
func formatFailureStats(failure domain.CaseFailure, number int) string {
	path := failure.File
	if path == "" {
		path = "Unknown path"
	}
	return fmt.Sprintf("[cyan]path:[white] [yellow]%s[white]::[yellow]row %d[white] (failure %d)\n", tview.Escape(path), failure.Row, number)
}
