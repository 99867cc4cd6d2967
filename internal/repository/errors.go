// Package repository defines the raw SQL data access layer along
// with sentinel error values shared by its repositories. The
// sentinels let higher layers such as handlers distinguish failure
// scenarios without string matching: a missing entity maps to an
// HTTP 404 while invalid input maps to a 400.
package repository

import "errors"

// ErrUserNotFound is returned when a referenced user does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrMovieNotFound is returned when a referenced movie does not exist.
var ErrMovieNotFound = errors.New("movie not found")

// ErrEmptyName is returned when a caller supplies a blank required
// name. The operation is rejected before any write happens.
var ErrEmptyName = errors.New("name must not be empty")
