package watchlist_test

import (
	"errors"
	"testing"
	"time"

	"watchlog/internal/watchlist"
)

func TestDraftValidateReportsEveryMissingField(t *testing.T) {
	err := watchlist.Draft{Title: "   "}.Validate()
	var verr *watchlist.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"title", "type", "rating"} {
		if !verr.Has(field) {
			t.Fatalf("expected problem for %s in %v", field, verr)
		}
	}
}

func TestNewEntryTrimsAndStamps(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("CET", 3600))
	entry, err := watchlist.NewEntry(watchlist.Draft{Title: "  Dune ", Type: watchlist.KindMovie, Rating: 4, Notes: " ok "}, now, func() string { return "fixed" })
	if err != nil {
		t.Fatalf("NewEntry: %v", err)
	}
	if entry.ID != "fixed" || entry.Title != "Dune" || entry.Notes != "ok" {
		t.Fatalf("unexpected entry %#v", entry)
	}
	if entry.CreatedAt.Location() != time.UTC || !entry.CreatedAt.Equal(now) {
		t.Fatalf("expected UTC createdAt, got %v", entry.CreatedAt)
	}
	if entry.UpdatedAt != nil || entry.TMDBID != nil {
		t.Fatalf("manual entry carries provider fields: %#v", entry)
	}
}

func TestNewEntryMergesSelection(t *testing.T) {
	id := int64(1399)
	selection := &watchlist.Entry{
		ID:         "tmdb-tv-1399",
		Title:      "Game of Thrones",
		Type:       watchlist.KindTVShow,
		TMDBID:     &id,
		MediaType:  watchlist.MediaTV,
		PosterPath: "/poster.jpg",
	}
	entry, err := watchlist.NewEntry(watchlist.Draft{Title: "GoT", Type: watchlist.KindTVShow, Rating: 3, Selection: selection}, time.Now(), nil)
	if err != nil {
		t.Fatalf("NewEntry: %v", err)
	}
	if entry.ID != "tmdb-tv-1399" || entry.TMDBID == nil || *entry.TMDBID != 1399 || entry.PosterPath != "/poster.jpg" {
		t.Fatalf("selection metadata not merged: %#v", entry)
	}
	if entry.Title != "GoT" || entry.Rating != 3 {
		t.Fatalf("form fields should win: %#v", entry)
	}

	*entry.TMDBID = 1
	if *selection.TMDBID != 1399 {
		t.Fatal("entry aliases the selection")
	}

	if _, err := watchlist.NewEntry(watchlist.Draft{Title: "GoT", Type: watchlist.KindMovie, Rating: 3, Selection: selection}, time.Now(), nil); err == nil {
		t.Fatal("expected mismatch between type and selected media type")
	}
}

func TestNewIDIsUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := watchlist.NewID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestParseKindAndFilter(t *testing.T) {
	cases := map[string]watchlist.Kind{
		"movie":   watchlist.KindMovie,
		"Movie":   watchlist.KindMovie,
		"tv":      watchlist.KindTVShow,
		"TV Show": watchlist.KindTVShow,
		"series":  watchlist.KindTVShow,
	}
	for in, want := range cases {
		got, err := watchlist.ParseKind(in)
		if err != nil || got != want {
			t.Fatalf("ParseKind(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := watchlist.ParseKind("podcast"); err == nil {
		t.Fatal("expected error for unknown kind")
	}

	f, err := watchlist.ParseFilter("")
	if err != nil || f != watchlist.FilterAll {
		t.Fatalf("ParseFilter(\"\") = %q, %v", f, err)
	}
	f, err = watchlist.ParseFilter("TV Show")
	if err != nil || f != watchlist.FilterTV {
		t.Fatalf("ParseFilter(TV Show) = %q, %v", f, err)
	}
	if !f.Match(watchlist.Entry{Type: watchlist.KindTVShow}) || f.Match(watchlist.Entry{Type: watchlist.KindMovie}) {
		t.Fatal("tv filter matched wrong entries")
	}
}
