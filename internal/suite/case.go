package suite

import (
	"strconv"
	"time"

	"ctr/internal/casetable"
	"ctr/internal/outcome"
)

// TimeLayout is the timestamp format used in case tables.
const TimeLayout = "2006-01-02 15:04:05"

// timePattern is TimeLayout as written in recorded error messages.
const timePattern = "yyyy-MM-dd HH:mm:ss"

// Case is the input projection of one data row. Values are kept as text;
// the typed accessors report coercion failures as operation outcomes.
type Case struct {
	Row      int
	Expected string
	fields   map[string]string
}

// NewCase builds a case from named field values.
func NewCase(row int, expected string, fields map[string]string) Case {
	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return Case{Row: row, Expected: expected, fields: copied}
}

// Field returns the raw text of a named input column.
func (c Case) Field(name string) string {
	return c.fields[name]
}

// Int parses a named field as a decimal integer.
func (c Case) Int(name string) (int, error) {
	raw := c.fields[name]
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &outcome.CoercionError{Field: name, Value: raw, Err: err}
	}
	return v, nil
}

// OptionalInt parses a named field, treating an empty cell as absent.
func (c Case) OptionalInt(name string) (*int, error) {
	if c.fields[name] == "" {
		return nil, nil
	}
	v, err := c.Int(name)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Time parses a named field with TimeLayout.
func (c Case) Time(name string) (time.Time, error) {
	raw := c.fields[name]
	v, err := time.ParseInLocation(TimeLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, &outcome.CoercionError{Field: name, Value: raw, Layout: timePattern, Err: err}
	}
	return v, nil
}

// Cursor tracks a run's position in its table. Total counts the header row,
// so the last case is at Index == Total-1.
type Cursor struct {
	Total int
	Index int
}

// Last reports whether the cursor is on the final data row.
func (c Cursor) Last() bool {
	return c.Index == c.Total-1
}

// Translate validates layout against table and projects every data row into
// a Case. It returns the cases together with a cursor at the first data row.
func Translate(table *casetable.Table, layout Layout) ([]Case, Cursor, error) {
	if err := layout.Validate(table); err != nil {
		return nil, Cursor{}, err
	}

	cases := make([]Case, 0, table.Len()-1)
	for row := 1; row < table.Len(); row++ {
		fields := make(map[string]string, len(layout.Inputs))
		for name, col := range layout.Inputs {
			v, err := table.Cell(row, col)
			if err != nil {
				return nil, Cursor{}, err
			}
			fields[name] = v
		}
		expected, err := table.Cell(row, layout.Expected)
		if err != nil {
			return nil, Cursor{}, err
		}
		cases = append(cases, Case{Row: row, Expected: expected, fields: fields})
	}

	return cases, Cursor{Total: table.Len(), Index: 1}, nil
}
