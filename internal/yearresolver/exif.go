package yearresolver

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
)

var (
	// ErrUndecodable means the file's metadata container could not be parsed.
	ErrUndecodable = errors.New("metadata could not be decoded")
	// ErrNoCaptureDate means the metadata holds no usable capture-date field.
	ErrNoCaptureDate = errors.New("no capture date in metadata")
)

// captureFields lists the EXIF fields read for the capture date. DateTime
// (tag 306) comes first; DateTimeOriginal only answers when it is missing or
// unusable.
var captureFields = []exif.FieldName{
	exif.DateTime,
	exif.DateTimeOriginal,
}

// CaptureTimestamp returns the textual capture date embedded in the image at
// path, e.g. "2020:04:15 15:00:03". The second result is false when the file
// has no decodable metadata or no capture-date field with a usable year.
func CaptureTimestamp(path string) (string, bool) {
	value, err := readCaptureTimestamp(path)
	return value, err == nil
}

// readCaptureTimestamp decodes JPEG APP1 or raw TIFF metadata with goexif.
func readCaptureTimestamp(path string) (value string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	defer func() {
		if r := recover(); r != nil {
			value, err = "", fmt.Errorf("%w: %v", ErrUndecodable, r)
		}
	}()

	x, err := exif.Decode(f)
	if x == nil {
		if err == nil {
			err = errors.New("empty metadata")
		}
		return "", fmt.Errorf("%w: %v", ErrUndecodable, err)
	}

	for _, field := range captureFields {
		tag, err := x.Get(field)
		if err != nil {
			continue
		}
		s, err := tag.StringVal()
		if err != nil {
			continue
		}
		if s, ok := usableTimestamp(s); ok {
			return s, nil
		}
	}
	return "", ErrNoCaptureDate
}

// usableTimestamp cleans s and reports whether it carries a valid year.
// Blank "unknown date" placeholders and zeroed dates are rejected.
func usableTimestamp(s string) (string, bool) {
	s = cleanTimestamp(s)
	if _, ok := yearFromTimestamp(s); !ok {
		return "", false
	}
	return s, true
}

// cleanTimestamp strips the NUL terminator and padding EXIF ASCII values carry.
func cleanTimestamp(s string) string {
	return strings.TrimSpace(strings.TrimRight(s, "\x00"))
}

// ExifStrategy reads the capture date from JPEG or TIFF EXIF metadata.
type ExifStrategy struct{}

// Name implements Strategy.
func (ExifStrategy) Name() string { return "exif" }

// Year implements Strategy.
func (ExifStrategy) Year(path string) (YearKey, bool) {
	value, err := readCaptureTimestamp(path)
	if err != nil {
		return "", false
	}
	return yearFromTimestamp(value)
}
