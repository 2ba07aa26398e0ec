// Package fileutil moves files between directories without ever overwriting
// the destination when a copy is required.
package fileutil
