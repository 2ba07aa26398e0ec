package organizer

import (
	"github.com/google/uuid"

	"photo-sorter/internal/yearresolver"
)

// SkipReason explains why a directory entry was left alone.
type SkipReason string

const (
	ReasonNotRegular SkipReason = "not a regular file"
	ReasonNotImage   SkipReason = "not an image file"
	ReasonUnreadable SkipReason = "could not be inspected"
)

// ViaPlan marks a move that a dry run would have made.
const ViaPlan = "plan"

// YearSummary is the per-year outcome.
type YearSummary struct {
	Year    yearresolver.YearKey
	Dir     string
	Planned int
	Moved   int
}

// Move is an image that was relocated (or, in a dry run, would be).
type Move struct {
	Source      string
	Destination string
	Year        yearresolver.YearKey
	Via         string
}

// Conflict is an image left in place because its name is already taken in
// the year folder.
type Conflict struct {
	Source   string
	Existing string
	Year     yearresolver.YearKey
}

// Skip is an entry that was not treated as an image.
type Skip struct {
	Path   string
	Reason SkipReason
	Err    error
}

// ItemError is a per-image failure that did not stop the run.
type ItemError struct {
	Path string
	Op   string
	Err  error
}

func (e ItemError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e ItemError) Unwrap() error {
	return e.Err
}

// Report is the structured outcome of one Organize call.
type Report struct {
	Folder    string
	RunID     string
	DryRun    bool
	Years     []YearSummary
	Moved     []Move
	Conflicts []Conflict
	Skipped   []Skip
	Errors    []ItemError

	yearIndex map[yearresolver.YearKey]int
}

func newReport(folder string, dryRun bool) *Report {
	return &Report{
		Folder:    folder,
		RunID:     uuid.NewString(),
		DryRun:    dryRun,
		yearIndex: make(map[yearresolver.YearKey]int),
	}
}

// ImagesFound counts the images that were planned.
func (r *Report) ImagesFound() int {
	n := 0
	for _, y := range r.Years {
		n += y.Planned
	}
	return n
}

// TotalMoved counts the images moved across all years.
func (r *Report) TotalMoved() int {
	return len(r.Moved)
}

// MovedFor returns how many images went into year's folder.
func (r *Report) MovedFor(year yearresolver.YearKey) int {
	if i, ok := r.yearIndex[year]; ok {
		return r.Years[i].Moved
	}
	return 0
}

// ConflictsFor returns how many images of year were kept in place.
func (r *Report) ConflictsFor(year yearresolver.YearKey) int {
	n := 0
	for _, c := range r.Conflicts {
		if c.Year == year {
			n++
		}
	}
	return n
}

func (r *Report) addYear(year yearresolver.YearKey, dir string, planned int) {
	r.yearIndex[year] = len(r.Years)
	r.Years = append(r.Years, YearSummary{Year: year, Dir: dir, Planned: planned})
}

func (r *Report) recordMove(m Move) {
	r.Moved = append(r.Moved, m)
	if i, ok := r.yearIndex[m.Year]; ok {
		r.Years[i].Moved++
	}
}

func (r *Report) recordConflict(c Conflict) {
	r.Conflicts = append(r.Conflicts, c)
}

func (r *Report) recordSkip(s Skip) {
	r.Skipped = append(r.Skipped, s)
}

func (r *Report) recordError(path, op string, err error) {
	r.Errors = append(r.Errors, ItemError{Path: path, Op: op, Err: err})
}
