package persistence

import "errors"

// ErrNotFound is returned when the requested record, or the snapshot
// itself, does not exist in the archive.
var ErrNotFound = errors.New("persistence: not found")
