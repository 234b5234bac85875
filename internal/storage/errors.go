package storage

import "errors"

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a record with the same key already exists.
var ErrConflict = errors.New("already exists")
