package kvstore_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"watchlog/internal/config"
	"watchlog/internal/kvstore"
	"watchlog/internal/logging"
)

const (
	keyEntries = "watchEntries"
	keyTheme   = "darkTheme"
)

func exerciseStore(t *testing.T, store kvstore.Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, keyEntries); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := store.Set(ctx, keyEntries, "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set(ctx, keyEntries, `[{"id":"a"}]`); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	value, ok, err := store.Get(ctx, keyEntries)
	if err != nil || !ok || value != `[{"id":"a"}]` {
		t.Fatalf("Get = %q, %v, %v", value, ok, err)
	}
	if err := store.Set(ctx, keyTheme, "true"); err != nil {
		t.Fatalf("Set theme: %v", err)
	}
	if err := store.Delete(ctx, keyTheme); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, keyTheme); ok {
		t.Fatal("deleted key still present")
	}
	if err := store.Delete(ctx, "never-set"); err != nil {
		t.Fatalf("Delete missing key: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, kvstore.NewMemory())
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "watchlog.db")

	store, err := kvstore.OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	exerciseStore(t, store)
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, _, err := store.Get(ctx, keyEntries); !errors.Is(err, kvstore.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}

	reopened, err := kvstore.OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	value, ok, err := reopened.Get(ctx, keyEntries)
	if err != nil || !ok || value != `[{"id":"a"}]` {
		t.Fatalf("value lost across reopen: %q %v %v", value, ok, err)
	}
}

func TestFileStoreWritesAtomically(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/data/watchlog.json"

	store, err := kvstore.OpenFile(fs, path, logging.NewNop())
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	exerciseStore(t, store)

	if exists, _ := afero.Exists(fs, path+".tmp"); exists {
		t.Fatal("temp file left behind")
	}
	reopened, err := kvstore.OpenFile(fs, path, logging.NewNop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	value, ok, _ := reopened.Get(context.Background(), keyEntries)
	if !ok || value != `[{"id":"a"}]` {
		t.Fatalf("value lost across reopen: %q", value)
	}
}

func TestFileStoreMovesCorruptDocumentAside(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/data/watchlog.json", []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	var logs bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Writer: &logs})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}

	store, err := kvstore.OpenFile(fs, "/data/watchlog.json", logger)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	ctx := context.Background()
	if _, ok, err := store.Get(ctx, keyEntries); ok || err != nil {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}
	if !strings.Contains(logs.String(), "moved aside") || !strings.Contains(logs.String(), "kvstore_file_corrupt") {
		t.Fatalf("expected corrupt-file warning, got %q", logs.String())
	}

	if exists, _ := afero.Exists(fs, "/data/watchlog.json"); exists {
		t.Fatal("corrupt document left in place")
	}
	moved, err := afero.Glob(fs, "/data/watchlog.json.corrupt-*")
	if err != nil || len(moved) != 1 {
		t.Fatalf("expected one moved-aside file, got %v (%v)", moved, err)
	}
	raw, err := afero.ReadFile(fs, moved[0])
	if err != nil || string(raw) != "{not json" {
		t.Fatalf("corrupt content not preserved: %q %v", raw, err)
	}

	if err := store.Set(ctx, keyEntries, "[]"); err != nil {
		t.Fatalf("Set after recovery: %v", err)
	}
	if raw, _ := afero.ReadFile(fs, moved[0]); string(raw) != "{not json" {
		t.Fatal("write touched the moved-aside file")
	}
}

func TestFileStoreCorruptDocumentOnReadOnlyFs(t *testing.T) {
	base := afero.NewMemMapFs()
	if err := afero.WriteFile(base, "/watchlog.json", []byte("[1,2"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	store, err := kvstore.OpenFile(afero.NewReadOnlyFs(base), "/watchlog.json", logging.NewNop())
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if _, ok, _ := store.Get(context.Background(), keyEntries); ok {
		t.Fatal("expected empty store")
	}
}

func TestFileStoreRollsBackOnWriteFailure(t *testing.T) {
	base := afero.NewMemMapFs()
	store, err := kvstore.OpenFile(afero.NewReadOnlyFs(base), "/watchlog.json", logging.NewNop())
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	ctx := context.Background()
	if err := store.Set(ctx, keyTheme, "true"); err == nil {
		t.Fatal("expected write failure on read-only fs")
	}
	if _, ok, _ := store.Get(ctx, keyTheme); ok {
		t.Fatal("failed write left value in memory")
	}
}

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.Backend = backend
	cfg.Storage.DataDir = t.TempDir()
	return &cfg
}

func TestOpenSelectsBackendAndLocks(t *testing.T) {
	for _, backend := range []string{config.BackendSQLite, config.BackendFile} {
		t.Run(backend, func(t *testing.T) {
			cfg := testConfig(t, backend)
			ctx := context.Background()

			store, err := kvstore.Open(ctx, cfg, logging.NewNop())
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			exerciseStore(t, store)

			if _, err := kvstore.Open(ctx, cfg, logging.NewNop()); !errors.Is(err, kvstore.ErrLocked) {
				t.Fatalf("expected ErrLocked for second writer, got %v", err)
			}
			if err := store.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			again, err := kvstore.Open(ctx, cfg, logging.NewNop())
			if err != nil {
				t.Fatalf("Open after close: %v", err)
			}
			defer again.Close()
			if _, ok, _ := again.Get(ctx, keyEntries); !ok {
				t.Fatal("entries not persisted by backend")
			}
		})
	}
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	cfg := testConfig(t, "redis")
	if _, err := kvstore.Open(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for unknown backend")
	}
	cfg.Storage.Backend = config.BackendFile
	store, err := kvstore.Open(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("lock not released after failed open: %v", err)
	}
	_ = store.Close()
}
