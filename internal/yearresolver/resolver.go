package yearresolver

import (
	"fmt"
	"log/slog"
	"time"

	"photo-sorter/internal/logging"
)

// =============================================================================
// Year Key
// =============================================================================

// YearKey is the 4-character year used both as a grouping key and as the name
// of the destination subfolder.
type YearKey string

// String returns the key as a plain string.
func (y YearKey) String() string {
	return string(y)
}

// Valid reports whether the key is exactly four ASCII digits and not the
// all-zero placeholder some cameras write for an unset clock.
func (y YearKey) Valid() bool {
	if len(y) != 4 || y == "0000" {
		return false
	}
	for i := 0; i < len(y); i++ {
		if y[i] < '0' || y[i] > '9' {
			return false
		}
	}
	return true
}

// yearOf formats the calendar year of t in loc as a YearKey.
func yearOf(t time.Time, loc *time.Location) YearKey {
	if loc == nil {
		loc = time.Local
	}
	return YearKey(fmt.Sprintf("%04d", t.In(loc).Year()))
}

// yearFromTimestamp takes the leading year of an EXIF-style timestamp
// ("YYYY:MM:DD HH:MM:SS"). Values shorter than four characters, with a
// non-numeric prefix, or with year 0000 are rejected.
func yearFromTimestamp(value string) (YearKey, bool) {
	if len(value) < 4 {
		return "", false
	}
	year := YearKey(value[:4])
	if !year.Valid() {
		return "", false
	}
	return year, true
}

// =============================================================================
// Strategies
// =============================================================================

// Strategy is one source of a year for a file. Year returns false when the
// strategy has nothing to say about the file, letting the next one try.
type Strategy interface {
	Name() string
	Year(path string) (YearKey, bool)
}

// =============================================================================
// Resolver
// =============================================================================

// Resolver asks its strategies in order and returns the first year found.
type Resolver struct {
	strategies []Strategy
	logger     *slog.Logger
	loc        *time.Location
	now        func() time.Time
}

// Option configures a Resolver built by New.
type Option func(*settings)

type settings struct {
	logger        *slog.Logger
	loc           *time.Location
	filenameDates bool
}

// WithLogger routes strategy decisions to logger at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithLocation sets the timezone used to turn filesystem timestamps into a
// calendar year. The default is time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *settings) { s.loc = loc }
}

// WithFilenameDates enables reading dates embedded in file names
// (DJI_20250619..., IMG_20250619_123456, 2025-06-19_...). The filename
// strategy runs after the metadata strategies and before timestamps.
func WithFilenameDates() Option {
	return func(s *settings) { s.filenameDates = true }
}

// New builds the default resolver:
//  1. EXIF capture date from JPEG/TIFF metadata
//  2. EXIF capture date found anywhere in the file (PNG, HEIC, WebP)
//  3. date in the file name (only with WithFilenameDates)
//  4. earlier of the creation and modification times
func New(opts ...Option) *Resolver {
	s := settings{loc: time.Local}
	for _, opt := range opts {
		opt(&s)
	}
	if s.loc == nil {
		s.loc = time.Local
	}

	strategies := []Strategy{
		ExifStrategy{},
		EmbeddedExifStrategy{},
	}
	if s.filenameDates {
		strategies = append(strategies, FilenameStrategy{})
	}
	strategies = append(strategies, TimestampStrategy{Location: s.loc})

	r := NewWithStrategies(s.logger, strategies...)
	r.loc = s.loc
	return r
}

// NewWithStrategies builds a resolver over an explicit strategy list. When
// every strategy declines, the current year is used.
func NewWithStrategies(logger *slog.Logger, strategies ...Strategy) *Resolver {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Resolver{
		strategies: strategies,
		logger:     logger.With("component", "yearresolver"),
		loc:        time.Local,
		now:        time.Now,
	}
}

// Strategies returns the strategy names in the order they are tried.
func (r *Resolver) Strategies() []string {
	names := make([]string, 0, len(r.strategies))
	for _, s := range r.strategies {
		names = append(names, s.Name())
	}
	return names
}

// ResolveYear returns the year the file at path was taken. It never fails.
func (r *Resolver) ResolveYear(path string) YearKey {
	year, _ := r.Resolve(path)
	return year
}

// Resolve is ResolveYear that also names the strategy which produced the year.
func (r *Resolver) Resolve(path string) (YearKey, string) {
	for _, s := range r.strategies {
		if year, ok := s.Year(path); ok {
			r.logger.Debug("year resolved", "path", path, "year", year, "source", s.Name())
			return year, s.Name()
		}
		r.logger.Debug("strategy declined", "path", path, "source", s.Name())
	}
	year := yearOf(r.now(), r.loc)
	r.logger.Warn("no strategy produced a year; using current year", "path", path, "year", year)
	return year, "now"
}
