package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

var (
	// ErrInsufficientStock is returned when a guarded stock decrement matches no row.
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDuplicate         = errors.New("duplicate entry")
	ErrReferenced        = errors.New("row is still referenced")
	ErrInvalidReference  = errors.New("referenced row does not exist")
)

// PostgreSQL error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError maps constraint violations onto the package sentinels and wraps the rest.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w (%s)", op, ErrDuplicate, pqErr.Constraint)
		case pgForeignKeyViolation:
			// a blocked delete is worded "update or delete on table ..."
			if strings.HasPrefix(pqErr.Message, "update or delete on table") {
				return fmt.Errorf("%s: %w (%s)", op, ErrReferenced, pqErr.Constraint)
			}

			return fmt.Errorf("%s: %w (%s)", op, ErrInvalidReference, pqErr.Constraint)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
