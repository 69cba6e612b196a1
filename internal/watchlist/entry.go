package watchlist

import (
	"fmt"
	"strings"
	"time"
)

// Kind is the display label stored in an entry's type field.
type Kind string

const (
	KindMovie  Kind = "Movie"
	KindTVShow Kind = "TV Show"
)

// MediaKind mirrors the metadata provider's media type.
type MediaKind string

const (
	MediaMovie MediaKind = "movie"
	MediaTV    MediaKind = "tv"
)

// ParseKind accepts display labels and provider media types in any case.
func ParseKind(value string) (Kind, error) {
	switch strings.ToLower(strings.Join(strings.Fields(value), "")) {
	case "movie", "movies", "film":
		return KindMovie, nil
	case "tvshow", "tv", "show", "series", "tvseries":
		return KindTVShow, nil
	default:
		return "", fmt.Errorf("unknown type %q (want movie or tv)", value)
	}
}

// MediaKind returns the provider media type matching the display label.
func (k Kind) MediaKind() MediaKind {
	switch k {
	case KindMovie:
		return MediaMovie
	case KindTVShow:
		return MediaTV
	default:
		return ""
	}
}

// Valid reports whether k is one of the known labels.
func (k Kind) Valid() bool {
	return k == KindMovie || k == KindTVShow
}

// Kind returns the display label for a provider media type.
func (m MediaKind) Kind() Kind {
	switch m {
	case MediaMovie:
		return KindMovie
	case MediaTV:
		return KindTVShow
	default:
		return ""
	}
}

// ParseMediaKind accepts "movie" or "tv" (and the display labels).
func ParseMediaKind(value string) (MediaKind, error) {
	kind, err := ParseKind(value)
	if err != nil {
		return "", err
	}
	return kind.MediaKind(), nil
}

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Entry is one recorded movie or TV show.
type Entry struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Type        Kind       `json:"type" yaml:"type"`
	Rating      int        `json:"rating" yaml:"rating"`
	Notes       string     `json:"notes" yaml:"notes"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
	TMDBID      *int64     `json:"tmdbId,omitempty" yaml:"tmdbId,omitempty"`
	MediaType   MediaKind  `json:"mediaType,omitempty" yaml:"mediaType,omitempty"`
	PosterPath  string     `json:"posterPath,omitempty" yaml:"posterPath,omitempty"`
	PosterURL   string     `json:"posterUrl,omitempty" yaml:"posterUrl,omitempty"`
	ReleaseDate string     `json:"releaseDate,omitempty" yaml:"releaseDate,omitempty"`
	Overview    string     `json:"overview,omitempty" yaml:"overview,omitempty"`
	Genres      []string   `json:"genres,omitempty" yaml:"genres,omitempty"`
}

// Year returns the four digit year of the release date, or "".
func (e Entry) Year() string {
	if len(e.ReleaseDate) >= 4 {
		return e.ReleaseDate[:4]
	}
	return ""
}

// Validate checks the stored-entry invariants.
func (e Entry) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(e.ID) == "" {
		verr.add("id", "is required")
	}
	if strings.TrimSpace(e.Title) == "" {
		verr.add("title", "is required")
	}
	if !e.Type.Valid() {
		verr.add("type", "must be Movie or TV Show")
	}
	if e.Rating < MinRating || e.Rating > MaxRating {
		verr.add("rating", fmt.Sprintf("must be between %d and %d", MinRating, MaxRating))
	}
	if e.MediaType != "" && e.Type.Valid() && e.MediaType != e.Type.MediaKind() {
		verr.add("type", fmt.Sprintf("%q does not match media type %q", e.Type, e.MediaType))
	}
	return verr.orNil()
}

func (e Entry) clone() Entry {
	out := e
	if e.UpdatedAt != nil {
		t := *e.UpdatedAt
		out.UpdatedAt = &t
	}
	if e.TMDBID != nil {
		id := *e.TMDBID
		out.TMDBID = &id
	}
	if e.Genres != nil {
		out.Genres = append([]string(nil), e.Genres...)
	}
	return out
}
