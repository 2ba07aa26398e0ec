package yearresolver

import (
	"time"

	"github.com/djherbis/times"
)

// CreatedAt returns the file's creation time: the birth time where the
// platform records one, otherwise the inode change time.
func CreatedAt(ts times.Timespec) time.Time {
	if ts.HasBirthTime() {
		return ts.BirthTime()
	}
	if ts.HasChangeTime() {
		return ts.ChangeTime()
	}
	return ts.ModTime()
}

// EarliestTimestamp returns the earlier of the file's creation and
// modification times.
func EarliestTimestamp(path string) (time.Time, error) {
	ts, err := times.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	created, modified := CreatedAt(ts), ts.ModTime()
	if created.Before(modified) {
		return created, nil
	}
	return modified, nil
}

// TimestampStrategy derives the year from filesystem timestamps. It succeeds
// for any file that can be stat'ed.
type TimestampStrategy struct {
	// Location is the timezone of the calendar conversion; nil means time.Local.
	Location *time.Location
}

// Name implements Strategy.
func (TimestampStrategy) Name() string { return "timestamps" }

// Year implements Strategy.
func (s TimestampStrategy) Year(path string) (YearKey, bool) {
	t, err := EarliestTimestamp(path)
	if err != nil {
		return "", false
	}
	return yearOf(t, s.Location), true
}
