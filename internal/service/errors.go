package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Availability reason strings surfaced verbatim to quiz takers.
const (
	ReasonNotActive        = "Quiz is not active"
	ReasonNotStarted       = "Quiz has not started yet"
	ReasonExpired          = "Quiz has expired"
	ReasonAlreadyAttempted = "You have already attempted this quiz"
	ReasonAvailable        = "Quiz is available"
)

// AvailabilityError rejects an attempt with a user-facing reason. It is not
// a system failure; controllers translate it to a 403 with the reason as the
// message.
type AvailabilityError struct {
	Reason string
}

func (e *AvailabilityError) Error() string {
	return e.Reason
}

func IsAvailabilityError(err error) (*AvailabilityError, bool) {
	var avErr *AvailabilityError
	if errors.As(err, &avErr) {
		return avErr, true
	}
	return nil, false
}

func notFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}
