package yearresolver

import (
	"errors"
	"fmt"

	exifscan "github.com/dsoprea/go-exif/v3"
)

// captureTagNames mirrors captureFields for go-exif's flat tag listing.
var captureTagNames = []string{"DateTime", "DateTimeOriginal"}

// readEmbeddedTimestamp searches the whole file for an EXIF block, which
// finds metadata in containers goexif does not walk (PNG eXIf, HEIC, WebP).
func readEmbeddedTimestamp(path string) (value string, err error) {
	defer func() {
		if r := recover(); r != nil {
			value, err = "", fmt.Errorf("%w: %v", ErrUndecodable, r)
		}
	}()

	raw, err := exifscan.SearchFileAndExtractExif(path)
	if err != nil {
		if errors.Is(err, exifscan.ErrNoExif) {
			return "", ErrNoCaptureDate
		}
		return "", fmt.Errorf("%w: %v", ErrUndecodable, err)
	}

	tags, _, err := exifscan.GetFlatExifData(raw, &exifscan.ScanOptions{})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUndecodable, err)
	}

	found := make(map[string]string, len(captureTagNames))
	for _, tag := range tags {
		text, ok := tag.Value.(string)
		if !ok {
			continue
		}
		if _, seen := found[tag.TagName]; seen {
			continue
		}
		if s, ok := usableTimestamp(text); ok {
			found[tag.TagName] = s
		}
	}
	for _, name := range captureTagNames {
		if s, ok := found[name]; ok {
			return s, nil
		}
	}
	return "", ErrNoCaptureDate
}

// EmbeddedExifStrategy reads the capture date from an EXIF block located by
// scanning the file bytes.
type EmbeddedExifStrategy struct{}

// Name implements Strategy.
func (EmbeddedExifStrategy) Name() string { return "embedded-exif" }

// Year implements Strategy.
func (EmbeddedExifStrategy) Year(path string) (YearKey, bool) {
	value, err := readEmbeddedTimestamp(path)
	if err != nil {
		return "", false
	}
	return yearFromTimestamp(value)
}
