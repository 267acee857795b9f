package migration

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/go-sql-driver/mysql"

	"ctr/internal/config"
)

var validDatabaseName = regexp.MustCompile(`^[A-Za-z0-9_]{1,64}$`)

// DatabaseManager manages worker databases on a MySQL server
type DatabaseManager struct {
	config *config.Config
}

// NewDatabaseManager creates a new DatabaseManager
func NewDatabaseManager(cfg *config.Config) *DatabaseManager {
	return &DatabaseManager{config: cfg}
}

// CheckAndCreateDatabases makes sure every worker database exists and
// returns the worker ids that can be used.
func (dm *DatabaseManager) CheckAndCreateDatabases(ctx context.Context, workerCount int) ([]int, error) {
	// Connect to MySQL server (without specifying database)
	db, err := sql.Open("mysql", dm.config.ServerDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database server: %w", err)
	}

	availableWorkers := make([]int, 0, workerCount)
	for i := 1; i <= workerCount; i++ {
		dbName := dm.config.GetDatabaseName(i)

		exists, err := dm.databaseExists(ctx, db, dbName)
		if err != nil {
			return nil, fmt.Errorf("failed to check database %s: %w", dbName, err)
		}
		if !exists {
			if err := dm.createDatabase(ctx, db, dbName); err != nil {
				return nil, fmt.Errorf("failed to create database %s: %w", dbName, err)
			}
		}

		availableWorkers = append(availableWorkers, i)
	}

	return availableWorkers, nil
}

// databaseExists checks if a database exists
func (dm *DatabaseManager) databaseExists(ctx context.Context, db *sql.DB, dbName string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"
	err := db.QueryRowContext(ctx, query, dbName).Scan(&exists)
	return exists, err
}

// createDatabase creates a new database
func (dm *DatabaseManager) createDatabase(ctx context.Context, db *sql.DB, dbName string) error {
	if !isValidDatabaseName(dbName) {
		return fmt.Errorf("invalid database name: %s", dbName)
	}

	query := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4", dbName)
	_, err := db.ExecContext(ctx, query)
	return err
}

// isValidDatabaseName only allows names that are safe to interpolate
func isValidDatabaseName(name string) bool {
	return validDatabaseName.MatchString(name)
}
