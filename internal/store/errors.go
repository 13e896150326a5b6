package store

import (
	"errors"
	"fmt"
	"strings"

	sqlite "modernc.org/sqlite"
)

// Caller-visible failure kinds. Validation errors are returned for
// user-facing correction and must not be retried; ErrBusy is safe to retry
// with backoff. Anything else is a storage failure that rolled the
// operation back.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrDuplicateIdentity = errors.New("box id already exists")
	ErrDuplicateCode     = errors.New("barcode already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrExceedsCapacity   = errors.New("return exceeds initial quantity")
	ErrSameActor         = errors.New("operator and qc personnel must differ")
	ErrBusy              = errors.New("database busy, retry")
)

// SQLite primary result codes.
const (
	sqliteBusy         = 5
	sqliteConstraint   = 19
	sqliteBusySnapshot = 261 // SQLITE_BUSY | (1 << 8)
)

// isBusy reports whether err is SQLite lock contention, which callers may
// retry.
func isBusy(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	code := se.Code()
	return code == sqliteBusy || code == sqliteBusySnapshot
}

// busyOr converts SQLite lock contention into ErrBusy and passes every
// other error through unchanged.
func busyOr(err error) error {
	if isBusy(err) {
		return fmt.Errorf("%w: %v", ErrBusy, err)
	}
	return err
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure on
// the given column (e.g. "boxes.barcode").
func isUniqueViolation(err error, column string) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) || se.Code()&0xff != sqliteConstraint {
		return false
	}
	return strings.Contains(se.Error(), column)
}
