package services

import "errors"

// ErrNotFound is returned when a record with the requested ID does not exist.
var ErrNotFound = errors.New("not found")
