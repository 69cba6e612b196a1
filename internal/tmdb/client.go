package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"watchlog/internal/logging"
	"watchlog/internal/watchlist"
)

const (
	opSearchMulti  = "tmdb multi search"
	opMovieDetails = "tmdb movie details"
	opTVDetails    = "tmdb tv details"
)

// Client provides access to the TMDB API.
type Client struct {
	apiKey        string
	baseURL       string
	imageBaseURL  string
	language      string
	httpClient    *http.Client
	retryAttempts uint
	retryDelay    time.Duration
	now           func() time.Time
	logger        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLanguage sets the language query parameter sent with every request.
func WithLanguage(language string) Option {
	return func(c *Client) {
		c.language = strings.TrimSpace(language)
	}
}

// WithRetryAttempts sets the total attempts for detail lookups.
func WithRetryAttempts(attempts int) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.retryAttempts = uint(attempts)
		}
	}
}

// WithRetryDelay sets the base backoff between detail attempts.
func WithRetryDelay(delay time.Duration) Option {
	return func(c *Client) {
		if delay >= 0 {
			c.retryDelay = delay
		}
	}
}

// WithClock overrides the clock used for createdAt stamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger used for fail-soft search warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "tmdb")
	}
}

// New creates a TMDB client. An empty API key is accepted; the provider then
// rejects requests and search degrades to empty results.
func New(apiKey, baseURL, imageBaseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	imageBaseURL = strings.TrimSpace(imageBaseURL)
	if imageBaseURL == "" {
		return nil, errors.New("tmdb image base url required")
	}
	client := &Client{
		apiKey:        strings.TrimSpace(apiKey),
		baseURL:       strings.TrimRight(baseURL, "/"),
		imageBaseURL:  strings.TrimRight(imageBaseURL, "/"),
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		retryAttempts: 1,
		retryDelay:    500 * time.Millisecond,
		now:           time.Now,
		logger:        logging.NewComponentLogger(nil, "tmdb"),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchMulti returns up to MaxSearchResults movie and TV matches for query,
// in provider order. Blank queries return no results without a request.
// Failures are logged and yield an empty slice.
func (c *Client) SearchMulti(ctx context.Context, query string) []SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return []SearchResult{}
	}

	params := url.Values{}
	params.Set("query", query)
	var payload searchResponse
	if err := c.getJSON(ctx, opSearchMulti, "/search/multi", params, &payload); err != nil {
		if isContextError(err) {
			c.logger.Debug("search cancelled", logging.String("query", query))
			return []SearchResult{}
		}
		logging.WarnWithContext(c.logger, "metadata search unavailable", "tmdb_search_failed",
			logging.String("query", query),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check tmdb.api_key and network access"),
			logging.String(logging.FieldImpact, "no suggestions shown; entries can still be added manually"))
		return []SearchResult{}
	}

	results := make([]SearchResult, 0, MaxSearchResults)
	for _, raw := range payload.Results {
		if raw.MediaType != string(watchlist.MediaMovie) && raw.MediaType != string(watchlist.MediaTV) {
			continue
		}
		results = append(results, raw.toSearchResult())
		if len(results) == MaxSearchResults {
			break
		}
	}
	return results
}

// GetDetails fetches the full record for a movie or TV show.
func (c *Client) GetDetails(ctx context.Context, id int64, kind watchlist.MediaKind) (*Details, error) {
	if id <= 0 {
		return nil, errors.New("tmdb id must be positive")
	}
	var op string
	switch kind {
	case watchlist.MediaMovie:
		op = opMovieDetails
	case watchlist.MediaTV:
		op = opTVDetails
	default:
		return nil, fmt.Errorf("unsupported media type %q", kind)
	}
	path := fmt.Sprintf("/%s/%d", kind, id)

	attempt := 0
	payload, err := retry.DoWithData(
		func() (rawDetails, error) {
			attempt++
			var raw rawDetails
			err := c.getJSON(ctx, op, path, url.Values{}, &raw)
			if err != nil && attempt < int(c.retryAttempts) && isRetryable(err) {
				c.logger.Debug("retrying detail lookup",
					logging.String("op", op),
					logging.Int64("tmdb_id", id),
					logging.Int("attempt", attempt),
					logging.Error(err))
			}
			return raw, err
		},
		retry.Context(ctx),
		retry.Attempts(c.retryAttempts),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(isRetryable),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	return payload.toDetails(kind), nil
}

// PosterURL joins path onto the image base URL, or returns the placeholder.
func (c *Client) PosterURL(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return PlaceholderPosterURL
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.imageBaseURL + path
}

// ToWatchEntry converts a provider record into an unrated entry candidate
// with the provider-derived id tmdb-<kind>-<id>.
func (c *Client) ToWatchEntry(rec Record, kind watchlist.MediaKind) watchlist.Entry {
	id := rec.ID
	entry := watchlist.Entry{
		ID:          fmt.Sprintf("tmdb-%s-%d", kind, rec.ID),
		Title:       rec.Title,
		Type:        kind.Kind(),
		Rating:      0,
		Notes:       "",
		CreatedAt:   c.now().UTC(),
		TMDBID:      &id,
		MediaType:   kind,
		PosterPath:  rec.PosterPath,
		PosterURL:   c.PosterURL(rec.PosterPath),
		ReleaseDate: rec.ReleaseDate,
		Overview:    rec.Overview,
	}
	if len(rec.Genres) > 0 {
		entry.Genres = append([]string(nil), rec.Genres...)
	}
	return entry
}

// getJSON issues a GET against the API and decodes a 200 response into out.
// Non-200 responses become *FetchError with the provider's status_message.
func (c *Client) getJSON(ctx context.Context, op, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return &FetchError{Op: op, Message: defaultMessage(op), Err: fmt.Errorf("execute request (latency=%v): %w", latency, err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return &FetchError{Op: op, Status: resp.StatusCode, Message: defaultMessage(op), Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		message := defaultMessage(op)
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && strings.TrimSpace(apiErr.StatusMessage) != "" {
			message = apiErr.StatusMessage
		}
		c.logger.Debug("tmdb request failed",
			logging.String("op", op),
			logging.Int("status", resp.StatusCode),
			logging.Duration("latency", latency))
		return &FetchError{Op: op, Status: resp.StatusCode, Message: message}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &FetchError{Op: op, Status: resp.StatusCode, Message: defaultMessage(op), Err: fmt.Errorf("decode response: %w", err)}
	}
	c.logger.Debug("tmdb request complete",
		logging.String("op", op),
		logging.Duration("latency", latency))
	return nil
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ParseID accepts a bare numeric TMDB id or a tmdb-<kind>-<id> entry id.
func ParseID(value string) (int64, watchlist.MediaKind, error) {
	value = strings.TrimSpace(value)
	kind := watchlist.MediaKind("")
	if rest, ok := strings.CutPrefix(value, "tmdb-"); ok {
		k, num, found := strings.Cut(rest, "-")
		if !found {
			return 0, "", fmt.Errorf("malformed tmdb id %q", value)
		}
		parsed, err := watchlist.ParseMediaKind(k)
		if err != nil {
			return 0, "", fmt.Errorf("malformed tmdb id %q: %w", value, err)
		}
		kind = parsed
		value = num
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, "", fmt.Errorf("invalid tmdb id %q", value)
	}
	return id, kind, nil
}
