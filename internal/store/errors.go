package store

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"ctr/internal/outcome"
)

// MySQL error numbers raised by violated constraints.
var mysqlConstraintErrors = map[uint16]bool{
	1048: true, // column cannot be null
	1062: true, // duplicate entry
	1216: true, // child row: foreign key fails (old servers)
	1217: true, // parent row: foreign key fails (old servers)
	1451: true, // cannot delete or update a parent row
	1452: true, // cannot add or update a child row
	3819: true, // check constraint violated
}

// classify converts driver constraint violations into *outcome.ConstraintError
// and returns every other error unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && mysqlConstraintErrors[myErr.Number] {
		return &outcome.ConstraintError{Code: int(myErr.Number), Err: err}
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) && liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return &outcome.ConstraintError{Code: liteErr.Code(), Err: err}
	}

	return err
}
