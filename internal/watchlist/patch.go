package watchlist

import "strings"

// Patch lists the fields to change on an entry. Nil fields are untouched;
// id and createdAt cannot be patched.
type Patch struct {
	Title       *string
	Type        *Kind
	Rating      *int
	Notes       *string
	TMDBID      *int64
	MediaType   *MediaKind
	PosterPath  *string
	PosterURL   *string
	ReleaseDate *string
	Overview    *string
	Genres      *[]string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Type == nil && p.Rating == nil && p.Notes == nil &&
		p.TMDBID == nil && p.MediaType == nil && p.PosterPath == nil && p.PosterURL == nil &&
		p.ReleaseDate == nil && p.Overview == nil && p.Genres == nil
}

func (p Patch) apply(e *Entry) {
	if p.Title != nil {
		e.Title = strings.TrimSpace(*p.Title)
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Rating != nil {
		e.Rating = *p.Rating
	}
	if p.Notes != nil {
		e.Notes = strings.TrimSpace(*p.Notes)
	}
	if p.TMDBID != nil {
		id := *p.TMDBID
		e.TMDBID = &id
	}
	if p.MediaType != nil {
		e.MediaType = *p.MediaType
	}
	if p.PosterPath != nil {
		e.PosterPath = *p.PosterPath
	}
	if p.PosterURL != nil {
		e.PosterURL = *p.PosterURL
	}
	if p.ReleaseDate != nil {
		e.ReleaseDate = *p.ReleaseDate
	}
	if p.Overview != nil {
		e.Overview = *p.Overview
	}
	if p.Genres != nil {
		e.Genres = append([]string(nil), (*p.Genres)...)
	}
}
