package services

import "errors"

var (
	// ErrState reports a local store or queue that cannot serve the
	// requested mutation, e.g. a missing record or an unsynced record that
	// has no queued create.
	ErrState = errors.New("inconsistent local state")
	// ErrRemote wraps a failed online-path call. No local change is made.
	ErrRemote = errors.New("remote call failed")
	// ErrFetch wraps a failed full listing during reconciliation.
	ErrFetch = errors.New("failed to fetch remote records")
	// ErrSyncInProgress is returned when a reconciliation is already running.
	ErrSyncInProgress = errors.New("synchronization already in progress")
	// ErrLocalDataNotAvailable is returned by an offline login when no
	// login has been cached locally.
	ErrLocalDataNotAvailable = errors.New("local data unavailable")
)
