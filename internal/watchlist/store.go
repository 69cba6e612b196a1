package watchlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"watchlog/internal/logging"
)

// StorageKey is the key-value record holding the whole collection.
const StorageKey = "watchEntries"

// Backend is the key-value storage the collection is persisted to.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Store owns the ordered entry collection. Every mutation rewrites the whole
// collection under StorageKey; a failed write rolls the mutation back.
type Store struct {
	backend Backend
	logger  *slog.Logger
	now     func() time.Time

	mu      sync.RWMutex
	entries []Entry
	index   map[string]int
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for updatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open loads the collection from backend. Missing or unparsable data yields
// an empty collection; only a failing backend read is an error.
func Open(ctx context.Context, backend Backend, logger *slog.Logger, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, errors.New("watchlist backend required")
	}
	s := &Store{
		backend: backend,
		logger:  logging.NewComponentLogger(logger, "watchlist"),
		now:     time.Now,
		entries: []Entry{},
		index:   map[string]int{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	raw, ok, err := s.backend.Get(ctx, StorageKey)
	if err != nil {
		return fmt.Errorf("read entries: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}

	var loaded []Entry
	if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
		logging.WarnWithContext(s.logger, "stored entries unreadable", "watchlist_load_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "export or inspect the watchEntries record"),
			logging.String(logging.FieldImpact, "starting with an empty list; the next change overwrites the record"))
		return nil
	}

	for _, entry := range loaded {
		if _, dup := s.index[entry.ID]; dup {
			logging.WarnWithContext(s.logger, "skipping duplicate stored entry", "watchlist_duplicate_id",
				logging.String(logging.FieldEntryID, entry.ID),
				logging.String(logging.FieldImpact, "only the first entry with this id is kept"))
			continue
		}
		s.index[entry.ID] = len(s.entries)
		s.entries = append(s.entries, entry)
	}
	s.logger.Debug("loaded entries", logging.Int("entry_count", len(s.entries)))
	return nil
}

// Add inserts entry at the front of the collection and persists.
func (s *Store) Add(ctx context.Context, entry Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[entry.ID]; exists {
		return fmt.Errorf("add %q: %w", entry.ID, ErrDuplicateID)
	}

	previous := s.entries
	next := make([]Entry, 0, len(previous)+1)
	next = append(next, entry.clone())
	next = append(next, previous...)
	if err := s.commit(ctx, next, previous); err != nil {
		return err
	}

	s.logger.Info("entry added",
		logging.String(logging.FieldEntryID, entry.ID),
		logging.String("title", entry.Title),
		logging.String("type", string(entry.Type)))
	return nil
}

// Update shallow-merges patch into the entry with id and stamps updatedAt.
// A missing id is a no-op reported through found=false with a nil error.
func (s *Store) Update(ctx context.Context, id string, patch Patch) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.index[id]
	if !ok {
		s.logger.Debug("update skipped, entry not found", logging.String(logging.FieldEntryID, id))
		return Entry{}, false, nil
	}

	merged := s.entries[idx].clone()
	patch.apply(&merged)
	stamp := s.now().UTC()
	merged.UpdatedAt = &stamp
	if err := merged.Validate(); err != nil {
		return Entry{}, true, err
	}

	previous := s.entries
	next := make([]Entry, len(previous))
	copy(next, previous)
	next[idx] = merged
	if err := s.commit(ctx, next, previous); err != nil {
		return Entry{}, true, err
	}

	s.logger.Info("entry updated", logging.String(logging.FieldEntryID, id))
	return merged.clone(), true, nil
}

// Remove deletes the entry with id. A missing id leaves the collection
// unchanged and reports found=false.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.index[id]
	if !ok {
		return false, nil
	}

	previous := s.entries
	next := make([]Entry, 0, len(previous)-1)
	next = append(next, previous[:idx]...)
	next = append(next, previous[idx+1:]...)
	if err := s.commit(ctx, next, previous); err != nil {
		return true, err
	}

	s.logger.Info("entry removed", logging.String(logging.FieldEntryID, id))
	return true, nil
}

// Get returns a copy of the entry with id.
func (s *Store) Get(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.index[id]
	if !ok {
		return Entry{}, false
	}
	return s.entries[idx].clone(), true
}

// Filter returns the order-preserving subsequence matching f.
func (s *Store) Filter(f Filter) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		if f.Match(entry) {
			out = append(out, entry.clone())
		}
	}
	return out
}

// List returns every entry, newest first.
func (s *Store) List() []Entry {
	return s.Filter(FilterAll)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// commit swaps in next and persists it, restoring previous on failure.
// Callers hold s.mu.
func (s *Store) commit(ctx context.Context, next, previous []Entry) error {
	s.entries = next
	s.reindex()
	if err := s.persist(ctx); err != nil {
		s.entries = previous
		s.reindex()
		logging.ErrorWithContext(s.logger, "watch list not saved", "watchlist_persist_failed",
			logging.Error(err),
			logging.Int("entries", len(previous)),
			logging.String(logging.FieldErrorHint, "check storage.data_dir permissions and free space"))
		return err
	}
	return nil
}

func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("marshal entries: %w", err)
	}
	if err := s.backend.Set(ctx, StorageKey, string(data)); err != nil {
		return fmt.Errorf("persist entries: %w", err)
	}
	return nil
}

func (s *Store) reindex() {
	s.index = make(map[string]int, len(s.entries))
	for i, entry := range s.entries {
		s.index[entry.ID] = i
	}
}
