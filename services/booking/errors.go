package booking

import "errors"

// ErrNoAgentAvailable signals a fully booked team for the requested interval.
// This is a normal outcome, surfaced to callers as a 400-class response, not
// a system fault.
var ErrNoAgentAvailable = errors.New("no agent available for the requested slot")

// ErrInvalidInterval is returned when a request's end does not follow its start.
var ErrInvalidInterval = errors.New("booking end must be after start")

// ErrAlreadyTerminal is returned for transitions out of cancelled or completed.
var ErrAlreadyTerminal = errors.New("booking is already in a terminal state")
