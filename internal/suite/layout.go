// Package suite binds case tables to business operations: which columns
// hold inputs and outcomes, how rows become cases, and how outcomes are
// written back.
package suite

import (
	"fmt"
	"sort"

	"ctr/internal/casetable"
)

// Layout maps named input columns and the outcome columns of a case table.
type Layout struct {
	Inputs   map[string]int `toml:"inputs"`
	Expected int            `toml:"expected"`
	Actual   int            `toml:"actual"`
	Result   int            `toml:"result"`
	Time     int            `toml:"time"`
	Operator int            `toml:"operator"`
}

// Check verifies the layout on its own: at least one input, every outcome
// column set, and no column written by the recorder shared with another
// column. Column 0 holds the case id and is never an outcome column.
func (l Layout) Check() error {
	if len(l.Inputs) == 0 {
		return fmt.Errorf("layout has no input columns")
	}

	owner := make(map[int]string, len(l.Inputs)+5)
	for _, name := range l.InputNames() {
		if col := l.Inputs[name]; col < 1 {
			return fmt.Errorf("layout column input %s: must be 1 or greater, got %d", name, col)
		}
		owner[l.Inputs[name]] = "input " + name
	}
	for _, c := range l.outcomeColumns() {
		if c.col < 1 {
			return fmt.Errorf("layout column %s: must be 1 or greater, got %d", c.name, c.col)
		}
		if other, taken := owner[c.col]; taken {
			return fmt.Errorf("layout column %s: column %d is already used by %s", c.name, c.col, other)
		}
		owner[c.col] = c.name
	}
	return nil
}

// Validate checks the layout and that every referenced column exists in
// the table.
func (l Layout) Validate(table *casetable.Table) error {
	if err := l.Check(); err != nil {
		return err
	}
	for _, name := range l.InputNames() {
		if err := checkColumn(table, "input "+name, l.Inputs[name]); err != nil {
			return err
		}
	}
	for _, c := range l.outcomeColumns() {
		if err := checkColumn(table, c.name, c.col); err != nil {
			return err
		}
	}
	return nil
}

type namedColumn struct {
	name string
	col  int
}

func (l Layout) outcomeColumns() []namedColumn {
	return []namedColumn{
		{"expected", l.Expected},
		{"actual", l.Actual},
		{"result", l.Result},
		{"time", l.Time},
		{"operator", l.Operator},
	}
}

// InputNames returns the input column names in column order.
func (l Layout) InputNames() []string {
	names := make([]string, 0, len(l.Inputs))
	for name := range l.Inputs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return l.Inputs[names[i]] < l.Inputs[names[j]]
	})
	return names
}

func checkColumn(table *casetable.Table, name string, col int) error {
	if col < 0 || col >= table.Width() {
		return fmt.Errorf("layout column %s: %w", name,
			&casetable.IndexError{Row: 0, Column: col, Rows: table.Len(), Width: table.Width()})
	}
	return nil
}
