// Package search runs debounced live metadata searches for interactive
// views. Each fired search is numbered; starting a new search cancels the
// previous request and responses from superseded searches are discarded.
package search
