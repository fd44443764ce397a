package service

import "errors"

// Sentinel kinds for query errors. The REPL and HTTP API map them to their
// own messages and status codes.
var (
	ErrNotLoaded           = errors.New("catalog not loaded")
	ErrInvalidUserID       = errors.New("invalid user id")
	ErrUserNotFound        = errors.New("user does not exist")
	ErrNoMatch             = errors.New("no match found")
	ErrInvalidTopNumber    = errors.New("invalid top number")
	ErrNoPlayersInPosition = errors.New("no players in position")
)
