package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownUpstream indicates the current branch has no usable upstream.
	ErrUnknownUpstream = errors.New("unknown upstream")
	// ErrCorruptReflog indicates a reflog line that does not have the expected shape.
	ErrCorruptReflog = errors.New("corrupt reflog")
	// ErrCounterExhausted indicates no free {YMDN} counter was found for the day.
	ErrCounterExhausted = errors.New("no free counter")
	// ErrNoHead indicates HEAD does not point to a commit yet.
	ErrNoHead = errors.New("HEAD does not point to a commit")
	// ErrDetachedHead indicates HEAD is not on a branch.
	ErrDetachedHead = errors.New("HEAD is detached")
	// ErrNoRebaseFound indicates the reflog holds no finished rebase for the branch.
	ErrNoRebaseFound = errors.New("no finished rebase in reflog")
)

// UnknownUpstreamError reports why the upstream of Branch could not be resolved.
type UnknownUpstreamError struct {
	Branch string
	Err    error
}

func (e *UnknownUpstreamError) Error() string {
	msg := "unknown upstream"
	if e.Branch != "" {
		msg = fmt.Sprintf("unknown upstream for branch %s", e.Branch)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *UnknownUpstreamError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrUnknownUpstream) hold for every UnknownUpstreamError.
func (e *UnknownUpstreamError) Is(target error) bool {
	return target == ErrUnknownUpstream
}
