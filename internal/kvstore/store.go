package kvstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"watchlog/internal/config"
	"watchlog/internal/logging"
)

// Store is a string key-value store.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("kvstore closed")

// Open prepares the data directory, acquires the writer lock, and opens the
// backend selected by cfg.Storage.Backend.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, error) {
	if cfg == nil {
		return nil, errors.New("kvstore config required")
	}
	logger = logging.NewComponentLogger(logger, "kvstore")

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock, err := acquireLock(cfg.LockPath())
	if err != nil {
		return nil, err
	}

	var backend Store
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		backend, err = OpenSQLite(ctx, cfg.SQLitePath())
	case config.BackendFile:
		backend, err = OpenFile(afero.NewOsFs(), cfg.FileStorePath(), logger)
	default:
		err = fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
	if err != nil {
		_ = lock.release()
		return nil, err
	}

	logger.Debug("key-value store opened",
		logging.String("backend", cfg.Storage.Backend),
		logging.String("data_dir", cfg.Storage.DataDir))
	return &lockedStore{Store: backend, lock: lock, logger: logger}, nil
}

// lockedStore releases the writer lock after closing the backend.
type lockedStore struct {
	Store
	lock   *writerLock
	logger *slog.Logger
}

func (s *lockedStore) Close() error {
	closeErr := s.Store.Close()
	if err := s.lock.release(); err != nil {
		logging.WarnWithContext(s.logger, "failed to release writer lock", "kvstore_unlock_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "remove the stale lock file if no other watchlog is running"))
	}
	return closeErr
}
