package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// activeClause selects rows whose activation flag is not explicitly false.
const activeClause = "COALESCE(is_active, TRUE) = TRUE"

// expectAffected turns an update or delete that matched nothing into sql.ErrNoRows.
func expectAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// pqStringArray helper ensures we pass string arrays consistently.
func pqStringArray(values []string) interface{} {
	return pq.Array(values)
}
