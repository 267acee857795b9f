// Package store persists users, activities, comments and appeals.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Dialect names a supported SQL backend.
type Dialect string

const (
	MySQL  Dialect = "mysql"
	SQLite Dialect = "sqlite"
)

// ParseDialect validates a driver name from configuration.
func ParseDialect(name string) (Dialect, error) {
	switch Dialect(name) {
	case MySQL, SQLite:
		return Dialect(name), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", name)
	}
}

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open connects to the database and makes sure it is reachable.
func Open(ctx context.Context, dialect Dialect, dsn string) (*sql.DB, error) {
	if dialect == SQLite {
		dsn = sqliteDSN(dsn)
	}
	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialect, err)
	}

	// Every pooled connection to ":memory:" would be a separate database.
	if dialect == SQLite && strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s database: %w", dialect, err)
	}
	return db, nil
}

// sqliteDSN makes the driver enable foreign keys on every connection it
// opens, including ones that replace a broken connection.
func sqliteDSN(dsn string) string {
	const pragma = "_pragma=foreign_keys(1)"
	if strings.Contains(dsn, pragma) {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + pragma
	}
	return dsn + "?" + pragma
}

// Migrate creates any missing tables.
func Migrate(ctx context.Context, db DBTX, dialect Dialect) error {
	for i, stmt := range Schema(dialect) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}
	return nil
}

// Drop removes every application table.
func Drop(ctx context.Context, db DBTX) error {
	for _, table := range Tables {
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("drop table %s: %w", table, err)
		}
	}
	return nil
}

// Queries runs the application's statements against a DB or transaction.
type Queries struct {
	db DBTX
}

// New returns Queries bound to db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}
