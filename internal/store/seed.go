package store

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Fixture is a parsed SQL script applied before each case.
type Fixture struct {
	Path       string
	Statements []string
}

// LoadFixture reads a SQL script and splits it into statements. Statements
// end with a semicolon at the end of a line; lines starting with "--" are
// comments.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return &Fixture{Path: path, Statements: splitStatements(string(data))}, nil
}

// Apply executes the fixture's statements in order.
func (f *Fixture) Apply(ctx context.Context, db DBTX) error {
	for i, stmt := range f.Statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("fixture %s statement %d: %w", f.Path, i+1, err)
		}
	}
	return nil
}

func splitStatements(script string) []string {
	var statements []string
	var current strings.Builder

	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
		if strings.HasSuffix(trimmed, ";") {
			stmt := strings.TrimSuffix(strings.TrimSpace(current.String()), ";")
			statements = append(statements, stmt)
			current.Reset()
		}
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		statements = append(statements, rest)
	}
	return statements
}
