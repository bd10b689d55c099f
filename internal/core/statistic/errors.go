package statistic

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks caller errors that are rejected before the store is contacted.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStoreUnavailable marks failures of the persistence layer.
	// Callers decide whether to drop, retry, or propagate; nothing retries internally.
	ErrStoreUnavailable = errors.New("statistic store unavailable")

	// ErrResolutionFailure marks an action resolver that failed to produce a label.
	ErrResolutionFailure = errors.New("action resolution failed")
)

// InvalidArgumentf wraps ErrInvalidArgument with a formatted reason.
func InvalidArgumentf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// StoreUnavailable wraps a persistence failure so callers can match it with errors.Is.
// The underlying error stays in the chain.
func StoreUnavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
