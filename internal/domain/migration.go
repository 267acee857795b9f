package domain

// MigrationResult represents the result of migrating one worker database
type MigrationResult struct {
	WorkerID   int
	Database   string
	Statements int
	Success    bool
	Error      error
}
