// Package config loads, normalizes, and validates watchlog configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the TMDB_API_KEY environment
// fallback. The Config type centralizes the metadata provider endpoints, the
// key-value storage backend, search debounce, and logging knobs.
//
// An absent API key is deliberately accepted: the tracker keeps working
// offline and provider calls fail at request time instead.
package config
