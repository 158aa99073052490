package repository

import "errors"

// Sentinel errors shared by the catalog repositories.  Handlers map
// these to HTTP statuses instead of string-matching database errors.
var (
	ErrTheaterNotFound = errors.New("theater not found")
	ErrMovieNotFound   = errors.New("movie not found")
)
