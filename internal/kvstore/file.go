package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/afero"

	"watchlog/internal/logging"
)

const corruptStampLayout = "20060102T150405Z"

// File keeps every key in one JSON object document. Each write replaces the
// document through a temp file and rename.
type File struct {
	fs   afero.Fs
	path string

	mu     sync.Mutex
	data   map[string]string
	closed bool
}

// OpenFile loads the document at path from fsys, creating nothing until the
// first write. An unreadable document is moved aside to
// <path>.corrupt-<timestamp> and the store starts empty.
func OpenFile(fsys afero.Fs, path string, logger *slog.Logger) (*File, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	f := &File{fs: fsys, path: path, data: map[string]string{}}

	raw, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return f, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}
	if len(raw) == 0 {
		return f, nil
	}
	if err := json.Unmarshal(raw, &f.data); err != nil {
		f.data = map[string]string{}
		f.quarantine(err, logger)
		return f, nil
	}
	if f.data == nil {
		f.data = map[string]string{}
	}
	return f, nil
}

// Path returns the document location.
func (f *File) Path() string {
	return f.path
}

func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return "", false, ErrClosed
	}
	value, ok := f.data[key]
	return value, ok, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	previous, existed := f.data[key]
	f.data[key] = value
	if err := f.flush(); err != nil {
		if existed {
			f.data[key] = previous
		} else {
			delete(f.data, key)
		}
		return err
	}
	return nil
}

func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	previous, existed := f.data[key]
	if !existed {
		return nil
	}
	delete(f.data, key)
	if err := f.flush(); err != nil {
		f.data[key] = previous
		return err
	}
	return nil
}

func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *File) quarantine(decodeErr error, logger *slog.Logger) {
	target := fmt.Sprintf("%s.corrupt-%s", f.path, time.Now().UTC().Format(corruptStampLayout))
	if err := f.fs.Rename(f.path, target); err != nil {
		logging.WarnWithContext(logger, "store file unreadable and could not be moved aside", "kvstore_file_corrupt",
			logging.String("path", f.path),
			logging.Error(errors.Join(decodeErr, err)),
			logging.String(logging.FieldErrorHint, "copy the file elsewhere before the next change if it matters"),
			logging.String(logging.FieldImpact, "starting with an empty store; the next write replaces the file"))
		return
	}
	logging.WarnWithContext(logger, "store file unreadable; moved aside", "kvstore_file_corrupt",
		logging.String("path", f.path),
		logging.String("moved_to", target),
		logging.Error(decodeErr),
		logging.String(logging.FieldErrorHint, "inspect or delete the moved file"),
		logging.String(logging.FieldImpact, "starting with an empty store"))
}

func (f *File) flush() error {
	payload, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store file: %w", err)
	}
	if err := f.fs.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := afero.WriteFile(f.fs, tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	if err := f.fs.Rename(tmp, f.path); err != nil {
		_ = f.fs.Remove(tmp)
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}
