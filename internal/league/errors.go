package league

import "errors"

var (
	// ErrNotFound is returned when an update or delete targets a record
	// that does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidArgument is returned for malformed input, such as a
	// negative player code or an unknown sort column.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStoreUnavailable is returned when the underlying database cannot
	// be reached or its schema is not initialized.
	ErrStoreUnavailable = errors.New("store unavailable")
)
