package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument matches any *InvalidArgumentError via errors.Is.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUpstream matches any *UpstreamError via errors.Is.
	ErrUpstream        = errors.New("upstream failure")
)

// InvalidArgumentError rejects a caller-supplied value. Valid lists the
// accepted options when the field is an enumeration.
type InvalidArgumentError struct {
	Field string
	Value string
	Valid []string
}

func (e *InvalidArgumentError) Error() string {
	if len(e.Valid) == 0 {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid %s option: %s. Valid options are: %s",
		e.Field, e.Value, strings.Join(e.Valid, ", "))
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// UpstreamError reports a failed call to the movie catalog. Status is zero
// when no HTTP response was received.
type UpstreamError struct {
	Status int
	Cause  error
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("upstream request failed: %v", e.Cause)
	}
	return fmt.Sprintf("upstream returned status %d: %v", e.Status, e.Cause)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}
