package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/sethvargo/go-retry"
)

const (
	// LockFileName is created inside the git directory while a run mutates refs.
	LockFileName = "tagmyrebase.lock"
	// LockRetryInterval defines the interval between lock retry attempts
	LockRetryInterval = 100 * time.Millisecond
)

// ErrLockTimeout indicates another run held the lock for the whole timeout.
var ErrLockTimeout = errors.New("could not acquire lock within timeout")

var errLockBusy = errors.New("lock busy")

// RunLock serialises mutating runs against one repository.
type RunLock struct {
	lock    *flock.Flock
	timeout time.Duration
}

// NewRunLock creates a lock file handle inside gitDir.
func NewRunLock(gitDir string, timeout time.Duration) *RunLock {
	return &RunLock{
		lock:    flock.New(filepath.Join(gitDir, LockFileName)),
		timeout: timeout,
	}
}

// Path returns the lock file path.
func (l *RunLock) Path() string {
	return l.lock.Path()
}

// Acquire takes the exclusive lock, polling until the timeout expires.
func (l *RunLock) Acquire(ctx context.Context) error {
	backoff := retry.WithMaxDuration(l.timeout, retry.NewConstant(LockRetryInterval))
	err := retry.Do(ctx, backoff, func(_ context.Context) error {
		locked, err := l.lock.TryLock()
		if err != nil {
			return fmt.Errorf("failed to acquire lock: %w", err)
		}
		if !locked {
			return retry.RetryableError(errLockBusy)
		}
		return nil
	})
	if errors.Is(err, errLockBusy) {
		return fmt.Errorf("%w: %s", ErrLockTimeout, l.lock.Path())
	}
	return err
}

// Release unlocks the lock file.
func (l *RunLock) Release() error {
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}
