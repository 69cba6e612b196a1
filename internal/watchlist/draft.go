package watchlist

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Draft is the user-supplied input for a new entry. Selection, when set, is
// the pending search pick whose provider metadata is merged into the entry.
type Draft struct {
	Title     string
	Type      Kind
	Rating    int
	Notes     string
	Selection *Entry
}

// Validate reports every missing or invalid required field.
func (d Draft) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(d.Title) == "" {
		verr.add("title", "is required")
	}
	if !d.Type.Valid() {
		verr.add("type", "is required")
	}
	if d.Rating < MinRating || d.Rating > MaxRating {
		verr.add("rating", fmt.Sprintf("must be between %d and %d", MinRating, MaxRating))
	}
	if d.Selection != nil && d.Type.Valid() && d.Selection.MediaType != "" && d.Selection.MediaType != d.Type.MediaKind() {
		verr.add("type", fmt.Sprintf("%q does not match the selected %s", d.Type, d.Selection.MediaType))
	}
	return verr.orNil()
}

// IDFunc generates ids for manual entries.
type IDFunc func() string

// NewID returns a time-ordered UUIDv7, falling back to a random UUID.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// NewEntry validates d and builds the entry to add. The form fields win over
// the selection for title, type, rating and notes.
func NewEntry(d Draft, now time.Time, newID IDFunc) (Entry, error) {
	if err := d.Validate(); err != nil {
		return Entry{}, err
	}
	if newID == nil {
		newID = NewID
	}

	var entry Entry
	if d.Selection != nil {
		entry = d.Selection.clone()
		entry.UpdatedAt = nil
	}
	if strings.TrimSpace(entry.ID) == "" {
		entry.ID = newID()
	}
	entry.Title = strings.TrimSpace(d.Title)
	entry.Type = d.Type
	entry.Rating = d.Rating
	entry.Notes = strings.TrimSpace(d.Notes)
	entry.CreatedAt = now.UTC()
	return entry, nil
}
