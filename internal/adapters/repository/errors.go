package repository

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrDuplicatePlayer = errors.New("duplicate player id")
	ErrOrphanRating    = errors.New("rating for unknown player")
)
