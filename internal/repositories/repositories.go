// package repositories provides persistence layer implementations for all model types.
package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ferrovia/muselib/internal/shared"
	"github.com/mattn/go-sqlite3"
)

// translateError maps driver-level constraint failures onto the shared
// sentinel errors. Unique violations on users.email become
// [shared.ErrDuplicateEmail]; foreign key failures become
// [shared.ErrConstraint]. Everything else passes through wrapped.
func translateError(err error, op string) error {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		switch serr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			if strings.Contains(serr.Error(), "users.email") {
				return fmt.Errorf("%w: %v", shared.ErrDuplicateEmail, err)
			}
			return fmt.Errorf("%w: %v", shared.ErrConstraint, err)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %v", shared.ErrConstraint, err)
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// nullable converts the zero value of a string or int into nil so optional
// columns are stored as NULL rather than empty values.
func nullable[T comparable](v T) any {
	var zero T
	if v == zero {
		return nil
	}
	return v
}
