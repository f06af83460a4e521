package repository

import (
	"database/sql"
	"strings"
)

// isDuplicate reports whether the error is a MySQL duplicate-key
// violation (error 1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}

// requireRow converts a zero-row update into ErrConflict: the unit of
// work treats updating a missing record as a commit failure.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}
