package domain

import "time"

// RunState is the terminal state of a suite run
type RunState string

const (
	StateCompleted RunState = "completed"
	StateAborted   RunState = "aborted"
	StateErrored   RunState = "errored"
)

// SuiteReport represents the result of running one suite
type SuiteReport struct {
	Suite      string        // Suite name
	File       string        // Case table that was replayed
	ResultFile string        // Where the updated table was written, empty if not persisted
	WorkerID   int           // Worker that ran the suite
	State      RunState      // Completed, aborted on mismatch, or errored before finishing
	Total      int           // Data rows in the table
	Executed   int           // Cases executed before the run ended
	Passed     int           // Cases whose actual output matched
	Failure    *CaseFailure  // Set when State is StateAborted
	Error      error         // Set when State is StateErrored
	Duration   time.Duration // Time taken to run the suite
}

// RunMeta contains metadata about a run
type RunMeta struct {
	TotalSuites     int     `json:"total_suites"`
	PassedSuites    int     `json:"passed_suites"`
	FailedSuites    int     `json:"failed_suites"`
	ErroredSuites   int     `json:"errored_suites"`
	TotalCases      int     `json:"total_cases"`
	PassedCases     int     `json:"passed_cases"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Timestamp       string  `json:"timestamp"`
}

// SuiteSummary is the persisted form of a SuiteReport
type SuiteSummary struct {
	Suite      string   `json:"suite"`
	File       string   `json:"file"`
	ResultFile string   `json:"result_file,omitempty"`
	State      RunState `json:"state"`
	Total      int      `json:"total"`
	Executed   int      `json:"executed"`
	Passed     int      `json:"passed"`
	Error      string   `json:"error,omitempty"`
}

// RunSummary is the complete output structure for a run
type RunSummary struct {
	Meta    RunMeta        `json:"meta"`
	Suites  []SuiteSummary `json:"suites"`
	Details []CaseFailure  `json:"details"`
}
