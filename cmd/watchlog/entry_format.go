package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"watchlog/internal/tmdb"
	"watchlog/internal/watchlist"
)

const (
	stampLayout   = "2006-01-02"
	minIDPrefix   = 4
	shortIDLength = 8
)

func ratingStars(rating int) string {
	if rating < watchlist.MinRating || rating > watchlist.MaxRating {
		return "-"
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", watchlist.MaxRating-rating)
}

func formatStamp(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Local().Format(stampLayout)
}

// shortID trims generated ids for tables; provider ids are already short.
// UUIDv7 ids lead with a timestamp, so the random tail is what tells entries
// apart.
func shortID(id string) string {
	if strings.HasPrefix(id, "tmdb-") || len(id) <= shortIDLength {
		return id
	}
	return id[len(id)-shortIDLength:]
}

func titleWithYear(title, year string) string {
	if year == "" {
		return title
	}
	return fmt.Sprintf("%s (%s)", title, year)
}

func entryRows(entries []watchlist.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			shortID(e.ID),
			titleWithYear(e.Title, e.Year()),
			string(e.Type),
			ratingStars(e.Rating),
			formatStamp(e.CreatedAt),
		})
	}
	return rows
}

// resolveEntryID accepts a full id or an unambiguous prefix or suffix (the
// short id shown in tables) of at least minIDPrefix characters.
func resolveEntryID(store *watchlist.Store, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", errors.New("entry id is required")
	}
	if _, ok := store.Get(arg); ok {
		return arg, nil
	}
	if len(arg) < minIDPrefix {
		return "", fmt.Errorf("no entry with id %s", arg)
	}
	var matches []string
	for _, e := range store.List() {
		if strings.HasPrefix(e.ID, arg) || strings.HasSuffix(e.ID, arg) {
			matches = append(matches, e.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no entry with id %s", arg)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id %s is ambiguous (%d entries match)", arg, len(matches))
	}
}

func posterURLFor(e watchlist.Entry, client *tmdb.Client) string {
	if e.PosterURL != "" {
		return e.PosterURL
	}
	if client != nil {
		return client.PosterURL(e.PosterPath)
	}
	return tmdb.PlaceholderPosterURL
}

func printEntry(out io.Writer, e watchlist.Entry, posterURL string) {
	fmt.Fprintf(out, "%s\n", titleWithYear(e.Title, e.Year()))
	fmt.Fprintf(out, "  ID:       %s\n", e.ID)
	fmt.Fprintf(out, "  Type:     %s\n", e.Type)
	fmt.Fprintf(out, "  Rating:   %s (%d/%d)\n", ratingStars(e.Rating), e.Rating, watchlist.MaxRating)
	if e.Notes != "" {
		fmt.Fprintf(out, "  Notes:    %s\n", e.Notes)
	}
	fmt.Fprintf(out, "  Added:    %s\n", formatStamp(e.CreatedAt))
	if e.UpdatedAt != nil {
		fmt.Fprintf(out, "  Updated:  %s\n", formatStamp(*e.UpdatedAt))
	}
	if e.TMDBID != nil {
		fmt.Fprintf(out, "  TMDB:     %d (%s)\n", *e.TMDBID, e.MediaType)
	}
	if len(e.Genres) > 0 {
		fmt.Fprintf(out, "  Genres:   %s\n", strings.Join(e.Genres, ", "))
	}
	fmt.Fprintf(out, "  Poster:   %s\n", posterURL)
	if e.Overview != "" {
		fmt.Fprintf(out, "\n%s\n", e.Overview)
	}
}

// validationMessage lists each problem of a validation error on its own line.
func validationMessage(err error) error {
	var verr *watchlist.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	lines := make([]string, 0, len(verr.Problems)+1)
	lines = append(lines, "entry not saved:")
	for _, p := range verr.Problems {
		lines = append(lines, fmt.Sprintf("  - %s %s", p.Field, p.Message))
	}
	return errors.New(strings.Join(lines, "\n"))
}
