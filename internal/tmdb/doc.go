// Package tmdb wraps the subset of The Movie Database API used by watchlog:
// multi search, movie and TV details, and poster URL construction.
//
// Search is fail-soft. Any transport or provider failure is logged and
// produces an empty result list, because an unavailable catalogue should
// only disable suggestions. Detail lookups are fail-loud and return a
// *FetchError carrying the provider's status_message when one is present.
// Detail lookups may be retried on transient failures (5xx, 429, transport
// errors) through retry-go when more than one attempt is configured.
package tmdb
