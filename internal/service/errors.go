package service

import "errors"

// Business errors returned by the services. Handlers map these to HTTP
// statuses with errors.Is; messages are safe to show to callers.
var (
	ErrValidation    = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrAuthRequired  = errors.New("authentication required")
	ErrForbidden     = errors.New("insufficient permissions")
	ErrConflict      = errors.New("conflict")
	ErrPollNotActive = errors.New("poll is not active")
	ErrPollClosed    = errors.New("poll voting period has ended")
	ErrAlreadyVoted  = errors.New("user already voted on this poll")
)
