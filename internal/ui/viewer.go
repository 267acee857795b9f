package ui

import "ctr/internal/domain"

// Viewer displays run failures in an interactive TUI
type Viewer interface {
	View(results *domain.RunSummary) error
}

var _ Viewer = (*ErrorViewer)(nil)
