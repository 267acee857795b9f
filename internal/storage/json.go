package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ctr/internal/domain"
)

// Summarize builds the persisted summary of a run.
func Summarize(reports []domain.SuiteReport, duration time.Duration, workers int, at time.Time) domain.RunSummary {
	output := domain.RunSummary{
		Meta: domain.RunMeta{
			TotalSuites:     len(reports),
			Duration:        duration.String(),
			DurationSeconds: duration.Seconds(),
			Workers:         workers,
			Timestamp:       at.Format(time.RFC3339),
		},
		Suites:  make([]domain.SuiteSummary, 0, len(reports)),
		Details: []domain.CaseFailure{},
	}

	for _, r := range reports {
		switch r.State {
		case domain.StateCompleted:
			output.Meta.PassedSuites++
		case domain.StateAborted:
			output.Meta.FailedSuites++
		default:
			output.Meta.ErroredSuites++
		}
		output.Meta.TotalCases += r.Total
		output.Meta.PassedCases += r.Passed

		s := domain.SuiteSummary{
			Suite:      r.Suite,
			File:       r.File,
			ResultFile: r.ResultFile,
			State:      r.State,
			Total:      r.Total,
			Executed:   r.Executed,
			Passed:     r.Passed,
		}
		if r.Error != nil {
			s.Error = r.Error.Error()
		}
		output.Suites = append(output.Suites, s)

		if r.Failure != nil {
			output.Details = append(output.Details, *r.Failure)
		}
	}
	return output
}

// Save writes the summary of a run to the configured JSON output file.
func (s *JSONStorage) Save(reports []domain.SuiteReport, duration time.Duration, workers int) error {
	output := Summarize(reports, duration, workers, s.now())
	return s.SaveOutput(&output)
}

// Load reads the last run summary from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.RunSummary, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.RunSummary
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// SaveOutput writes the full summary to the configured JSON file.
func (s *JSONStorage) SaveOutput(output *domain.RunSummary) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
