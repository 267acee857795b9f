package migration

import "context"

// Migrator prepares the worker databases
type Migrator interface {
	Run(ctx context.Context, workerCount int, fresh bool) error
}
