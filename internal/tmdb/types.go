package tmdb

import "watchlog/internal/watchlist"

// MaxSearchResults caps the suggestions returned by SearchMulti.
const MaxSearchResults = 8

// PlaceholderPosterURL is returned by PosterURL for items without artwork.
const PlaceholderPosterURL = "https://via.placeholder.com/300x450?text=No+Image"

// SearchResult is one movie or TV match from a multi search.
type SearchResult struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	MediaKind   watchlist.MediaKind `json:"mediaType"`
	PosterPath  string              `json:"posterPath,omitempty"`
	ReleaseDate string              `json:"releaseDate,omitempty"`
	Overview    string              `json:"overview,omitempty"`
	Popularity  float64             `json:"popularity,omitempty"`
}

// Year returns the release year, or "" when the date is unknown.
func (r SearchResult) Year() string {
	if len(r.ReleaseDate) >= 4 {
		return r.ReleaseDate[:4]
	}
	return ""
}

// Record returns the fields ToWatchEntry copies.
func (r SearchResult) Record() Record {
	return Record{
		ID:          r.ID,
		Title:       r.Title,
		PosterPath:  r.PosterPath,
		ReleaseDate: r.ReleaseDate,
		Overview:    r.Overview,
	}
}

// Details is the full provider record for one movie or TV show.
type Details struct {
	ID               int64               `json:"id"`
	Title            string              `json:"title"`
	MediaKind        watchlist.MediaKind `json:"mediaType"`
	Overview         string              `json:"overview,omitempty"`
	ReleaseDate      string              `json:"releaseDate,omitempty"`
	PosterPath       string              `json:"posterPath,omitempty"`
	Genres           []string            `json:"genres,omitempty"`
	Runtime          int                 `json:"runtime,omitempty"`
	NumberOfSeasons  int                 `json:"numberOfSeasons,omitempty"`
	NumberOfEpisodes int                 `json:"numberOfEpisodes,omitempty"`
	Status           string              `json:"status,omitempty"`
	Tagline          string              `json:"tagline,omitempty"`
	VoteAverage      float64             `json:"voteAverage,omitempty"`
}

// Record returns the fields ToWatchEntry copies.
func (d Details) Record() Record {
	return Record{
		ID:          d.ID,
		Title:       d.Title,
		PosterPath:  d.PosterPath,
		ReleaseDate: d.ReleaseDate,
		Overview:    d.Overview,
		Genres:      d.Genres,
	}
}

// Record is the provider data carried into a watch entry.
type Record struct {
	ID          int64
	Title       string
	PosterPath  string
	ReleaseDate string
	Overview    string
	Genres      []string
}

// wire formats

type searchResponse struct {
	Page    int         `json:"page"`
	Results []rawResult `json:"results"`
}

type rawResult struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	MediaType    string  `json:"media_type"`
	PosterPath   string  `json:"poster_path"`
	Popularity   float64 `json:"popularity"`
}

func (r rawResult) toSearchResult() SearchResult {
	kind := watchlist.MediaKind(r.MediaType)
	out := SearchResult{
		ID:          r.ID,
		Title:       r.Title,
		MediaKind:   kind,
		PosterPath:  r.PosterPath,
		ReleaseDate: r.ReleaseDate,
		Overview:    r.Overview,
		Popularity:  r.Popularity,
	}
	if kind == watchlist.MediaTV {
		out.Title = r.Name
		out.ReleaseDate = r.FirstAirDate
	}
	return out
}

type rawGenre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type rawDetails struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Name             string     `json:"name"`
	Overview         string     `json:"overview"`
	ReleaseDate      string     `json:"release_date"`
	FirstAirDate     string     `json:"first_air_date"`
	PosterPath       string     `json:"poster_path"`
	Genres           []rawGenre `json:"genres"`
	Runtime          int        `json:"runtime"`
	NumberOfSeasons  int        `json:"number_of_seasons"`
	NumberOfEpisodes int        `json:"number_of_episodes"`
	Status           string     `json:"status"`
	Tagline          string     `json:"tagline"`
	VoteAverage      float64    `json:"vote_average"`
}

func (r rawDetails) toDetails(kind watchlist.MediaKind) *Details {
	out := &Details{
		ID:               r.ID,
		Title:            r.Title,
		MediaKind:        kind,
		Overview:         r.Overview,
		ReleaseDate:      r.ReleaseDate,
		PosterPath:       r.PosterPath,
		Runtime:          r.Runtime,
		NumberOfSeasons:  r.NumberOfSeasons,
		NumberOfEpisodes: r.NumberOfEpisodes,
		Status:           r.Status,
		Tagline:          r.Tagline,
		VoteAverage:      r.VoteAverage,
	}
	if kind == watchlist.MediaTV {
		out.Title = r.Name
		out.ReleaseDate = r.FirstAirDate
	}
	for _, g := range r.Genres {
		if g.Name != "" {
			out.Genres = append(out.Genres, g.Name)
		}
	}
	return out
}

type errorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
