package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"fleet/internal/repository"
)

// Querier is an interface satisfied by both *sql.DB and *sql.Tx, so every
// repository in this package can run standalone or inside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Ensure interfaces are satisfied.
var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// Postgres constraint violation codes this package maps to sentinel errors.
const (
	codeUniqueViolation     = pq.ErrorCode("23505")
	codeForeignKeyViolation = pq.ErrorCode("23503")
	codeExclusionViolation  = pq.ErrorCode("23P01")
)

// mapError translates driver-level constraint violations into repository
// sentinel errors so callers never have to inspect pq internals. The
// exclusion violation comes from the rentals no-overlap constraint and is
// what catches a concurrent create/update that raced past the
// application-level check.
func mapError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case codeUniqueViolation:
		return repository.ErrDuplicate
	case codeForeignKeyViolation:
		return repository.ErrInUse
	case codeExclusionViolation:
		return repository.ErrRentalOverlap
	}

	return err
}
