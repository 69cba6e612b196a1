package kvstore

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the data directory.
var ErrLocked = errors.New("watch list is in use by another watchlog process")

type writerLock struct {
	path string
	lock *flock.Flock
}

func acquireLock(path string) (*writerLock, error) {
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrLocked, path)
	}
	return &writerLock{path: path, lock: lock}, nil
}

func (l *writerLock) release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
