// Package enrich refreshes provider metadata for stored entries.
//
// Detail lookups run concurrently on a bounded pool; the resulting patches
// are applied to the store one at a time in collection order. A failed
// lookup is reported for that entry and does not stop the others.
package enrich
