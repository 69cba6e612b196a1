// Package fileutil holds small file helpers shared by commands that write
// user-visible files.
package fileutil
