package repository

import "errors"

// ErrNotFound is returned by storage adapters when a record does not exist
// for the requesting user.
var ErrNotFound = errors.New("record not found")
