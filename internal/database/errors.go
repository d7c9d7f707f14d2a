package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	// ErrNotFound means the requested id does not exist. It is a normal
	// outcome: the accompanying entity is always nil.
	ErrNotFound = errors.New("record not found")

	// ErrConflict means a uniqueness constraint (author name, book ISBN) was violated.
	ErrConflict = errors.New("record conflicts with an existing one")

	// ErrAuthorNotFound means a book references an author id that does not exist.
	ErrAuthorNotFound = errors.New("referenced author does not exist")

	// ErrInvalidPage means skip or limit was negative.
	ErrInvalidPage = errors.New("skip and limit must be non-negative")

	// ErrInvalidQuery means a search query was empty.
	ErrInvalidQuery = errors.New("search query must not be empty")
)

const pgUniqueViolation = "23505"

// StoreError is any failure of the store itself (connection, transaction,
// driver). Callers may retry; the operation left no partial effect.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: store failure: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Translate classifies err for the operation op. Errors already in the
// catalog taxonomy pass through unchanged.
func Translate(op string, err error) error {
	var storeErr *StoreError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrAuthorNotFound),
		errors.Is(err, ErrInvalidPage),
		errors.Is(err, ErrInvalidQuery),
		errors.As(err, &storeErr):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: %w", op, ErrAuthorNotFound)
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, ErrConflict)
	default:
		return &StoreError{Op: op, Err: err}
	}
}

// isUniqueViolation recognises duplicate keys from gorm's translator and,
// for statements that bypass it, from the raw driver errors.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}

// ValidatePage rejects negative pagination arguments.
func ValidatePage(skip, limit int) error {
	if skip < 0 || limit < 0 {
		return ErrInvalidPage
	}
	return nil
}
