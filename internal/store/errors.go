package store

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateUsername is returned when a username is already taken.
var ErrDuplicateUsername = errors.New("username already exists")

// ErrDuplicateEmail is returned when an email is already taken.
var ErrDuplicateEmail = errors.New("email already exists")
