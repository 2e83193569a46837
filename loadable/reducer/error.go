package reducer

import (
	"context"
	"errors"
	"fmt"
)

// Cancelled is the sentinel error kind a load closure returns (or wraps) to
// signal cooperative cancellation. It must never be classified as a failure,
// whether it originates from the host cancelling the task's context or from
// user code raising it directly — e.g. the pagination adapter raising it
// when asked to load past the last page.
var Cancelled = errors.New("loadable: load cancelled")

// IsCancelled reports whether err represents cancellation rather than
// failure, unwrapping as needed. context.Canceled counts as cancellation,
// since that's what a load closure observes when Registry tears down its
// context; context.DeadlineExceeded does not — a timeout is a failure, not
// a cancellation, per the load contract.
func IsCancelled(err error) bool {
	return errors.Is(err, Cancelled) || errors.Is(err, context.Canceled)
}

// Error wraps a load failure with the key of the loadable that produced it,
// mirroring the Op/Err shape the host application's own error type uses for
// its internal errors, without carrying that type's full taxonomy (retry
// policy, safe-to-show, structured metadata) into a package meant to stay
// dependency-light. Loadable.launch wraps every non-cancelled load error in
// one of these before it reaches Failed, so a host unwrapping the completion
// action's error with errors.As(&reducer.Error{}) always finds which
// loadable's Key failed.
type Error struct {
	Op  string
	Err error
}

// Error implements error.
func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying error for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Err }
