package testsupport

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// EXIF tag ids used by the fixtures.
const (
	TagDateTime         uint16 = 0x0132
	TagDateTimeOriginal uint16 = 0x9003

	tagExifIFDPointer uint16 = 0x8769
)

// TIFFWithDate builds a TIFF block carrying a single capture-date tag.
// DateTimeOriginal is placed in an Exif sub-IFD, anything else in IFD0.
func TIFFWithDate(tag uint16, value string) []byte {
	if tag == TagDateTimeOriginal {
		return TIFFWithDates("", value)
	}
	return TIFFWithDates(value, "")
}

// TIFFWithDates builds a little-endian TIFF block with DateTime in IFD0 and
// DateTimeOriginal in an Exif sub-IFD. An empty value omits its tag.
func TIFFWithDates(dateTime, dateTimeOriginal string) []byte {
	ifd0 := asciiTags(TagDateTime, dateTime)
	sub := asciiTags(TagDateTimeOriginal, dateTimeOriginal)

	ifd0Len := len(ifd0)
	if len(sub) > 0 {
		ifd0Len++
	}
	subOffset := uint32(8 + ifdSize(ifd0Len))
	dataOffset := subOffset
	if len(sub) > 0 {
		dataOffset += uint32(ifdSize(len(sub)))
	}

	var b, data bytes.Buffer
	b.WriteString("II*\x00")
	le(&b, uint32(8))

	le(&b, uint16(ifd0Len))
	for _, tag := range ifd0 {
		writeASCII(&b, &data, tag, dataOffset)
	}
	if len(sub) > 0 {
		le(&b, tagExifIFDPointer)
		le(&b, uint16(4)) // LONG
		le(&b, uint32(1))
		le(&b, subOffset)
	}
	le(&b, uint32(0))

	if len(sub) > 0 {
		le(&b, uint16(len(sub)))
		for _, tag := range sub {
			writeASCII(&b, &data, tag, dataOffset)
		}
		le(&b, uint32(0))
	}

	b.Write(data.Bytes())
	return b.Bytes()
}

type asciiTag struct {
	id    uint16
	value string
}

func asciiTags(id uint16, value string) []asciiTag {
	if value == "" {
		return nil
	}
	return []asciiTag{{id: id, value: value}}
}

// ifdSize is count(2) + entries(12 each) + next IFD offset(4).
func ifdSize(entries int) int {
	return 2 + 12*entries + 4
}

// writeASCII appends an ASCII entry to b. Values over four bytes go to data,
// which the caller places at dataOffset.
func writeASCII(b, data *bytes.Buffer, tag asciiTag, dataOffset uint32) {
	val := append([]byte(tag.value), 0)
	le(b, tag.id)
	le(b, uint16(2)) // ASCII
	le(b, uint32(len(val)))
	if len(val) <= 4 {
		inline := make([]byte, 4)
		copy(inline, val)
		b.Write(inline)
		return
	}
	le(b, dataOffset+uint32(data.Len()))
	data.Write(val)
}

func le(b *bytes.Buffer, v any) {
	_ = binary.Write(b, binary.LittleEndian, v)
}

// JPEGWithExif wraps a TIFF block in an APP1 Exif segment between SOI and EOI.
func JPEGWithExif(tiff []byte) []byte {
	payload := append([]byte("Exif\x00\x00"), tiff...)
	size := len(payload) + 2

	out := []byte{0xFF, 0xD8, 0xFF, 0xE1, byte(size >> 8), byte(size)}
	out = append(out, payload...)
	return append(out, 0xFF, 0xD9)
}

// PNGWithExif emits a PNG signature followed by an eXIf chunk holding tiff.
// The chunk CRC is left zeroed.
func PNGWithExif(tiff []byte) []byte {
	out := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}
	size := make([]byte, 4)
	binary.BigEndian.PutUint32(size, uint32(len(tiff)))
	out = append(out, size...)
	out = append(out, "eXIf"...)
	out = append(out, tiff...)
	return append(out, 0, 0, 0, 0)
}

// CorruptJPEG starts with a JPEG signature but carries no decodable segments.
func CorruptJPEG() []byte {
	return append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, []byte("truncated, not really a jpeg")...)
}

// PlainPNG encodes a small solid-colour PNG without metadata.
func PlainPNG(t testing.TB, c color.Color) []byte {
	t.Helper()
	var b bytes.Buffer
	if err := png.Encode(&b, solid(c)); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return b.Bytes()
}

// PlainJPEG encodes a small solid-colour JPEG without metadata.
func PlainJPEG(t testing.TB, c color.Color) []byte {
	t.Helper()
	var b bytes.Buffer
	if err := jpeg.Encode(&b, solid(c), nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return b.Bytes()
}

func solid(c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// WriteImage writes data to path and, when modTime is non-zero, sets both
// access and modification times to it.
func WriteImage(t testing.TB, path string, data []byte, modTime time.Time) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	if modTime.IsZero() {
		return
	}
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}

// ExifTime parses an EXIF-style timestamp in the local timezone.
func ExifTime(t testing.TB, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006:01:02 15:04:05", value, time.Local)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return ts
}
