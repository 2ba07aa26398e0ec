// Package yearresolver determines the year an image was taken.
//
// Embedded capture metadata is authoritative when present. Screenshots,
// exports and scans often lack it, so the resolver falls back to the earlier
// of the file's creation and modification times, which is always available.
// The precedence is an ordered list of Strategy values; the first one that
// produces a year wins.
package yearresolver
