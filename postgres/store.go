// Package postgres wires a PostgreSQL-backed Store into flowexpr.
package postgres

import (
	"database/sql"

	corestore "github.com/flowexpr-go/flowexpr/internal/store"
	pstore "github.com/flowexpr-go/flowexpr/postgres/internal/store"
)

// NewStore initializes the required schema in db and returns a Store
// that persists run records in PostgreSQL.
//
// db must use a PostgreSQL driver, e.g. imported for side effects as
// _ "github.com/jackc/pgx/v5/stdlib".
func NewStore(db *sql.DB) (corestore.Store, error) {
	return pstore.New(db)
}
