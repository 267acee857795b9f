package suite

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Definition binds a case table to an operation.
type Definition struct {
	Name       string `toml:"name"`
	Operation  string `toml:"operation"`
	File       string `toml:"file"`        // case table, relative to the case dir
	ResultFile string `toml:"result_file"` // written next to File
	Operator   string `toml:"operator"`    // credited in the operator column
	Fixture    string `toml:"fixture"`     // optional SQL applied before each case
	Layout     Layout `toml:"layout"`
}

// Validate checks that the definition can be run.
func (d Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("suite definition without a name")
	}
	if _, ok := LookupOperation(d.Operation); !ok {
		return fmt.Errorf("suite %s: unknown operation %q (known: %s)",
			d.Name, d.Operation, strings.Join(OperationNames(), ", "))
	}
	if d.File == "" {
		return fmt.Errorf("suite %s: no case file", d.Name)
	}
	if err := d.Layout.Check(); err != nil {
		return fmt.Errorf("suite %s: %w", d.Name, err)
	}
	return nil
}

// ResultPath returns where the updated table of a run is written.
func (d Definition) ResultPath(caseDir string) string {
	name := d.ResultFile
	if name == "" {
		base := filepath.Base(d.File)
		name = strings.TrimSuffix(base, filepath.Ext(base)) + "_result.csv"
	}
	return filepath.Join(caseDir, filepath.Dir(d.File), name)
}

// CasePath returns the full path of the case table.
func (d Definition) CasePath(caseDir string) string {
	return filepath.Join(caseDir, d.File)
}

// Defaults returns the built-in suites.
func Defaults() []Definition {
	return []Definition{
		{
			Name:       "add_comment",
			Operation:  "add_comment",
			File:       "unit/comment/add_comment.csv",
			ResultFile: "add_comment_result.csv",
			Operator:   "2151294",
			Layout: Layout{
				Inputs:   map[string]int{"user_id": 1, "act_id": 2, "cmt_content": 3, "cmt_time": 4},
				Expected: 5,
				Actual:   6,
				Result:   7,
				Time:     9,
				Operator: 10,
			},
		},
		{
			Name:       "prohibit",
			Operation:  "prohibit",
			File:       "unit/order/prohibit.csv",
			ResultFile: "prohibit_result.csv",
			Operator:   "2154064",
			Layout: Layout{
				Inputs:   map[string]int{"user_id": 1, "if_prohibited": 2},
				Expected: 3,
				Actual:   4,
				Result:   5,
				Time:     7,
				Operator: 8,
			},
		},
		{
			Name:       "add_appeal",
			Operation:  "add_appeal",
			File:       "unit/order/add_appeal.csv",
			ResultFile: "add_appeal_result.csv",
			Operator:   "2154064",
			Layout: Layout{
				Inputs: map[string]int{
					"user_id": 1, "cmt_id": 2, "act_id": 3,
					"complainant_id": 4, "app_content": 5, "app_time": 6,
				},
				Expected: 7,
				Actual:   8,
				Result:   9,
				Time:     11,
				Operator: 12,
			},
		},
	}
}

// Merge overlays overrides onto base by suite name. Only the fields an
// override sets replace the base values; a layout is replaced as a whole
// when the override names any input column. Unknown names are appended in
// the order given.
func Merge(base, overrides []Definition) []Definition {
	merged := append([]Definition(nil), base...)
	index := make(map[string]int, len(merged))
	for i, d := range merged {
		index[d.Name] = i
	}
	for _, o := range overrides {
		if i, ok := index[o.Name]; ok {
			merged[i] = merged[i].overlay(o)
			continue
		}
		index[o.Name] = len(merged)
		merged = append(merged, o)
	}
	return merged
}

func (d Definition) overlay(o Definition) Definition {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&d.Operation, o.Operation)
	set(&d.File, o.File)
	set(&d.ResultFile, o.ResultFile)
	set(&d.Operator, o.Operator)
	set(&d.Fixture, o.Fixture)
	if len(o.Layout.Inputs) > 0 {
		d.Layout = o.Layout
	}
	return d
}
