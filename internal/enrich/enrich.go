package enrich

import (
	"context"
	"log/slog"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"watchlog/internal/logging"
	"watchlog/internal/tmdb"
	"watchlog/internal/watchlist"
)

// DefaultConcurrency bounds concurrent detail lookups.
const DefaultConcurrency = 4

// Fetcher looks up provider details.
type Fetcher interface {
	GetDetails(ctx context.Context, id int64, kind watchlist.MediaKind) (*tmdb.Details, error)
	PosterURL(path string) string
}

// Status is the outcome of refreshing one entry.
type Status string

const (
	StatusUpdated Status = "updated"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Outcome describes what happened to one entry.
type Outcome struct {
	ID     string
	Title  string
	Status Status
	Err    error
}

// Report summarises a refresh.
type Report struct {
	Outcomes []Outcome
}

// Count returns how many outcomes have status.
func (r Report) Count(status Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Refresher updates entries from the metadata provider.
type Refresher struct {
	store       *watchlist.Store
	fetcher     Fetcher
	concurrency int
	logger      *slog.Logger
}

// New creates a Refresher. A non-positive concurrency uses DefaultConcurrency.
func New(store *watchlist.Store, fetcher Fetcher, concurrency int, logger *slog.Logger) *Refresher {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Refresher{
		store:       store,
		fetcher:     fetcher,
		concurrency: concurrency,
		logger:      logging.NewComponentLogger(logger, "enrich"),
	}
}

type lookup struct {
	index   int
	entry   watchlist.Entry
	details *tmdb.Details
	err     error
}

// Refresh fetches details for the entries with ids (every entry when ids is
// empty) and patches poster, release date, overview and genres. Entries
// without a provider id are skipped. The returned error is non-nil only when
// ctx ends before the lookups finish.
func (r *Refresher) Refresh(ctx context.Context, ids ...string) (Report, error) {
	targets := r.targets(ids)
	report := Report{Outcomes: make([]Outcome, 0, len(targets))}

	p := pool.NewWithResults[lookup]().WithMaxGoroutines(r.concurrency)
	for i, entry := range targets {
		if entry.TMDBID == nil {
			continue
		}
		kind := entry.MediaType
		if kind == "" {
			kind = entry.Type.MediaKind()
		}
		p.Go(func() lookup {
			details, err := r.fetcher.GetDetails(ctx, *entry.TMDBID, kind)
			return lookup{index: i, entry: entry, details: details, err: err}
		})
	}
	lookups := p.Wait()
	sort.Slice(lookups, func(a, b int) bool { return lookups[a].index < lookups[b].index })

	if err := ctx.Err(); err != nil {
		return report, err
	}

	byIndex := make(map[int]lookup, len(lookups))
	for _, l := range lookups {
		byIndex[l.index] = l
	}
	for i, entry := range targets {
		l, ok := byIndex[i]
		if !ok {
			report.Outcomes = append(report.Outcomes, Outcome{ID: entry.ID, Title: entry.Title, Status: StatusSkipped})
			continue
		}
		report.Outcomes = append(report.Outcomes, r.apply(ctx, l))
	}

	r.logger.Info("metadata refresh complete",
		logging.Int("updated", report.Count(StatusUpdated)),
		logging.Int("skipped", report.Count(StatusSkipped)),
		logging.Int("failed", report.Count(StatusFailed)))
	return report, nil
}

func (r *Refresher) targets(ids []string) []watchlist.Entry {
	if len(ids) == 0 {
		return r.store.List()
	}
	out := make([]watchlist.Entry, 0, len(ids))
	for _, id := range ids {
		if entry, ok := r.store.Get(id); ok {
			out = append(out, entry)
		}
	}
	return out
}

func (r *Refresher) apply(ctx context.Context, l lookup) Outcome {
	outcome := Outcome{ID: l.entry.ID, Title: l.entry.Title}
	if l.err != nil {
		logging.WarnWithContext(r.logger, "metadata refresh failed", "enrich_fetch_failed",
			logging.String(logging.FieldEntryID, l.entry.ID),
			logging.Error(l.err),
			logging.String(logging.FieldImpact, "entry keeps its previous metadata"))
		outcome.Status = StatusFailed
		outcome.Err = l.err
		return outcome
	}

	d := l.details
	posterURL := r.fetcher.PosterURL(d.PosterPath)
	genres := append([]string(nil), d.Genres...)
	patch := watchlist.Patch{
		PosterPath:  &d.PosterPath,
		PosterURL:   &posterURL,
		ReleaseDate: &d.ReleaseDate,
		Overview:    &d.Overview,
		Genres:      &genres,
	}
	if _, found, err := r.store.Update(ctx, l.entry.ID, patch); err != nil {
		outcome.Status = StatusFailed
		outcome.Err = err
		return outcome
	} else if !found {
		outcome.Status = StatusSkipped
		return outcome
	}
	outcome.Status = StatusUpdated
	return outcome
}
