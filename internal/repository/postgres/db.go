// Package postgres implements the repository interfaces over PostgreSQL.
// The reservations table carries an exclusion constraint so the store
// itself rejects a second ACTIVE reservation overlapping on the same slot;
// see migrations/001_init.sql.
package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"parkinglot/internal/repository"
)

// Postgres error codes we translate to repository sentinels.
const (
	codeUniqueViolation    = "23505"
	codeExclusionViolation = "23P01"
)

// Open connects to the database and verifies the connection.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return db, nil
}

// translateConstraint maps constraint violations to the repository
// sentinels; other errors pass through unchanged.
func translateConstraint(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case codeUniqueViolation:
			return fmt.Errorf("%w: %s", repository.ErrDuplicate, pqErr.Constraint)
		case codeExclusionViolation:
			return fmt.Errorf("%w: %s", repository.ErrOverlap, pqErr.Constraint)
		}
	}
	return err
}
