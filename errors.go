package dynstate

import (
	"errors"
	"fmt"
)

// ErrNotSupported marks a scenario that requires a capability, format, or
// feature the backend does not provide. It yields a Skip outcome, never a
// Fail.
var ErrNotSupported = errors.New("dynstate: not supported")

// InvariantError reports a scenario constructed with an internally
// inconsistent parameter combination. It is a defect in the scenario
// catalog, fatal at construction time.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return "dynstate: invalid scenario: " + e.Reason
}

func invariantf(format string, args ...any) *InvariantError {
	return &InvariantError{Reason: fmt.Sprintf(format, args...)}
}
