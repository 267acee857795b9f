package domain

import "fmt"

// CaseFailure is raised when a case's actual output differs from the recorded expectation
type CaseFailure struct {
	Suite    string `json:"suite"`
	File     string `json:"file"`
	Row      int    `json:"row"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Kind     string `json:"kind"`
	Resolved bool   `json:"resolved,omitempty"` // Track if the failure is marked as resolved
}

func (f *CaseFailure) Error() string {
	return fmt.Sprintf("suite %s, case row %d: expected %q, got %q", f.Suite, f.Row, f.Expected, f.Actual)
}
