// Package preferences stores user interface settings in the key-value store.
package preferences
