package repository

import "errors"

// ErrNotFound is the sentinel wrapped by all repository lookups that miss.
// Callers test with errors.Is.
var ErrNotFound = errors.New("not found")
