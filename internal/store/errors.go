package store

import "errors"

// ErrNotFound reports a lookup for an article or memo ID that is not in the
// collection. Mutations return it instead of partially applying.
var ErrNotFound = errors.New("not found")

// ErrLocked reports that another inkwell process holds the data directory.
var ErrLocked = errors.New("archive is locked by another inkwell process")
