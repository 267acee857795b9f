package discovery

import (
	"fmt"

	"ctr/internal/casetable"
	"ctr/internal/domain"
	"ctr/internal/suite"
)

// Parser reads case tables for listing
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// CountCases returns the number of data rows in a case table
func (p *Parser) CountCases(path string) (int, error) {
	table, err := casetable.Load(path)
	if err != nil {
		return 0, err
	}
	return table.Len() - 1, nil
}

// FindCases returns the inputs and expectation of every case in a table,
// inputs in column order.
func (p *Parser) FindCases(path string, layout suite.Layout) ([]domain.CaseRow, error) {
	table, err := casetable.Load(path)
	if err != nil {
		return nil, err
	}
	cases, _, err := suite.Translate(table, layout)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	names := layout.InputNames()
	rows := make([]domain.CaseRow, 0, len(cases))
	for _, c := range cases {
		inputs := make([]string, len(names))
		for i, name := range names {
			inputs[i] = c.Field(name)
		}
		rows = append(rows, domain.CaseRow{Row: c.Row, Inputs: inputs, Expected: c.Expected})
	}
	return rows, nil
}

// Suites describes each definition with its resolved path and case count.
// Tables that cannot be read are reported with Cases set to -1.
func (p *Parser) Suites(defs []suite.Definition, casePath func(string) string) []domain.Suite {
	suites := make([]domain.Suite, 0, len(defs))
	for _, def := range defs {
		path := casePath(def.File)
		count, err := p.CountCases(path)
		if err != nil {
			count = -1
		}
		suites = append(suites, domain.Suite{Name: def.Name, Path: path, Cases: count})
	}
	return suites
}

// Unreferenced returns the scanned tables no definition points at.
func Unreferenced(tables []string, suites []domain.Suite) []string {
	known := make(map[string]bool, len(suites))
	for _, s := range suites {
		known[s.Path] = true
	}
	var rest []string
	for _, t := range tables {
		if !known[t] {
			rest = append(rest, t)
		}
	}
	return rest
}
