// Package watchlist owns the watch entry collection.
//
// A Store holds the ordered entries (newest first) with an id index, and
// persists the complete collection as one JSON array under the watchEntries
// key of a key-value Backend after every Add, Update or Remove. Unreadable
// stored data is logged and treated as an empty list.
//
// Update and Remove of an unknown id are no-ops reported through a found
// flag rather than an error; callers decide whether that deserves a message.
package watchlist
