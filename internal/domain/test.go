package domain

// Suite represents a case table bound to one operation
type Suite struct {
	Name  string // Suite name
	Path  string // Full path to the case table
	Cases int    // Data rows in the table, -1 if the table could not be read
}

// CaseRow represents a single recorded case for listing
type CaseRow struct {
	Row      int
	Inputs   []string
	Expected string
}
