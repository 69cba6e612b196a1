package search

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"watchlog/internal/logging"
	"watchlog/internal/tmdb"
)

// Searcher returns suggestions for a query. Implementations must honour ctx
// cancellation and never fail; an unavailable provider yields no results.
type Searcher interface {
	SearchMulti(ctx context.Context, query string) []tmdb.SearchResult
}

// Results is one delivered search outcome.
type Results struct {
	Seq     uint64
	Query   string
	Results []tmdb.SearchResult
}

// Session debounces query input and delivers the results of the latest
// search only.
type Session struct {
	parent    context.Context
	searcher  Searcher
	debouncer *Debouncer
	deliver   func(Results)
	logger    *slog.Logger

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup
}

// NewSession creates a session that calls deliver from a background
// goroutine. deliver must not call back into the session. Searches run under
// ctx; once it is done, in-flight searches are cancelled and no new ones start.
func NewSession(ctx context.Context, searcher Searcher, interval time.Duration, deliver func(Results), logger *slog.Logger) *Session {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Session{
		parent:    ctx,
		searcher:  searcher,
		debouncer: NewDebouncer(interval),
		deliver:   deliver,
		logger:    logging.NewComponentLogger(logger, "search"),
	}
}

// Input records the current query text. A blank query cancels pending and
// in-flight searches and delivers nothing; otherwise a search is scheduled
// after the debounce interval.
func (s *Session) Input(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		s.debouncer.Cancel()
		s.mu.Lock()
		s.supersedeLocked()
		s.mu.Unlock()
		return
	}
	s.debouncer.Debounce(func() { s.run(query) })
}

// Latest returns the sequence number of the most recent search.
func (s *Session) Latest() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// Close cancels outstanding work and waits for running searches to return.
func (s *Session) Close() {
	s.debouncer.Cancel()
	s.mu.Lock()
	s.closed = true
	s.supersedeLocked()
	s.mu.Unlock()
	s.wg.Wait()
}

// supersedeLocked invalidates the in-flight search. Callers hold s.mu.
func (s *Session) supersedeLocked() {
	s.seq++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) run(query string) {
	s.mu.Lock()
	if s.closed || s.parent.Err() != nil {
		s.mu.Unlock()
		return
	}
	s.supersedeLocked()
	seq := s.seq
	ctx, cancel := context.WithCancel(s.parent)
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()
	defer cancel()

	s.logger.Debug("search fired", logging.String("query", query), logging.Int64("seq", int64(seq)))
	results := s.searcher.SearchMulti(ctx, query)

	s.mu.Lock()
	stale := seq != s.seq || s.closed || ctx.Err() != nil
	s.mu.Unlock()
	if stale {
		s.logger.Debug("discarding stale search results", logging.String("query", query), logging.Int64("seq", int64(seq)))
		return
	}
	if s.deliver != nil {
		s.deliver(Results{Seq: seq, Query: query, Results: results})
	}
}
