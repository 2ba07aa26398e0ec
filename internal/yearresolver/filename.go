package yearresolver

import (
	"path/filepath"
	"regexp"
	"time"
)

// datePatterns contains regex patterns for extracting dates from filenames.
// Patterns are tried in order; first match wins.
var datePatterns = []struct {
	regex  *regexp.Regexp
	layout string
}{
	// DJI drone: DJI_20250619224111_0001_D.JPG
	{regexp.MustCompile(`DJI_(\d{8})`), "20060102"},

	// Sony: 20250616_C0416.JPG
	{regexp.MustCompile(`^(\d{8})_C\d+`), "20060102"},

	// Generic timestamp: IMG_20250619_123456.jpg
	{regexp.MustCompile(`(\d{8})_\d{6}`), "20060102"},

	// ISO date: 2025-06-19_photo.jpg
	{regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`), "2006-01-02"},

	// Compact date: 20250619_photo.jpg (last resort, less specific)
	{regexp.MustCompile(`(\d{8})`), "20060102"},
}

// dateFromFilename returns the first date any pattern parses out of name.
func dateFromFilename(name string) (time.Time, bool) {
	for _, p := range datePatterns {
		matches := p.regex.FindStringSubmatch(name)
		if len(matches) < 2 {
			continue
		}
		if t, err := time.Parse(p.layout, matches[1]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FilenameStrategy reads a date from the file's base name.
type FilenameStrategy struct{}

// Name implements Strategy.
func (FilenameStrategy) Name() string { return "filename" }

// Year implements Strategy.
func (FilenameStrategy) Year(path string) (YearKey, bool) {
	t, ok := dateFromFilename(filepath.Base(path))
	if !ok {
		return "", false
	}
	// Parsed in UTC with no clock time, so the year is taken as written.
	return yearOf(t, time.UTC), true
}
