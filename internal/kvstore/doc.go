// Package kvstore provides the string key-value storage that holds the
// watch list and user preferences.
//
// Three backends implement Store: SQLite (the default, schema managed by
// goose migrations), a single JSON document written atomically through an
// afero filesystem, and an in-memory map used by tests. Open picks the
// backend named in the configuration and takes an exclusive writer lock on
// the data directory for as long as the store stays open.
package kvstore
