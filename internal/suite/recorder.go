package suite

import (
	"time"

	"ctr/internal/casetable"
)

// Result labels written into the result column.
const (
	PassLabel = "通过测试"
	FailLabel = "未通过测试"
)

// Recorder writes outcomes into a case table.
type Recorder struct {
	table  *casetable.Table
	layout Layout
}

// NewRecorder returns a Recorder for table using layout's outcome columns.
func NewRecorder(table *casetable.Table, layout Layout) *Recorder {
	return &Recorder{table: table, layout: layout}
}

// Record writes the actual output, execution time and operator of a row.
func (r *Recorder) Record(row int, actual string, at time.Time, operator string) error {
	if err := r.table.SetCell(row, r.layout.Actual, actual); err != nil {
		return err
	}
	if err := r.table.SetCell(row, r.layout.Time, at.Format(TimeLayout)); err != nil {
		return err
	}
	return r.table.SetCell(row, r.layout.Operator, operator)
}

// MarkResult writes the pass or fail label of a row.
func (r *Recorder) MarkResult(row int, passed bool) error {
	label := FailLabel
	if passed {
		label = PassLabel
	}
	return r.table.SetCell(row, r.layout.Result, label)
}
