package organizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"photo-sorter/internal/fileutil"
	"photo-sorter/internal/logging"
	"photo-sorter/internal/yearresolver"
)

var (
	// ErrNotFound is returned when the folder to organize does not exist.
	ErrNotFound = errors.New("folder not found")
	// ErrNotDirectory is returned when the path exists but is not a directory.
	ErrNotDirectory = errors.New("not a directory")
)

// YearResolver determines the year an image was taken.
type YearResolver interface {
	ResolveYear(path string) yearresolver.YearKey
}

// Organizer moves the images of a flat folder into year subfolders.
type Organizer struct {
	resolver YearResolver
	logger   *slog.Logger
	dryRun   bool
}

// Option configures an Organizer.
type Option func(*Organizer)

// WithResolver replaces the default year resolver.
func WithResolver(r YearResolver) Option {
	return func(o *Organizer) { o.resolver = r }
}

// WithLogger sets the logger for per-item progress.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Organizer) { o.logger = logger }
}

// WithDryRun plans and reports moves without touching the filesystem.
func WithDryRun(dryRun bool) Option {
	return func(o *Organizer) { o.dryRun = dryRun }
}

// New constructs an organizer. Without WithResolver it uses
// yearresolver.New with the same logger.
func New(opts ...Option) *Organizer {
	o := &Organizer{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}
	if o.resolver == nil {
		o.resolver = yearresolver.New(yearresolver.WithLogger(o.logger))
	}
	o.logger = o.logger.With("component", "organizer")
	return o
}

// Organize moves every image directly inside folder into a subfolder named
// after the year it was taken.
//
// Only a missing folder (ErrNotFound), a path that is not a directory
// (ErrNotDirectory), a listing failure or a cancelled ctx abort the run.
// Name conflicts, non-images and failed moves are recorded in the Report.
// An image whose name already exists in its year folder stays where it is,
// which makes re-running after a partial run safe.
func (o *Organizer) Organize(ctx context.Context, folder string) (*Report, error) {
	info, err := os.Stat(folder)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, folder)
		}
		return nil, fmt.Errorf("inspect folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, folder)
	}

	report := newReport(folder, o.dryRun)
	logger := o.logger.With("run_id", report.RunID, "folder", folder)
	logger.Info("inspecting image files", "dry_run", o.dryRun)

	plan, err := o.scan(ctx, folder, report, logger)
	if err != nil {
		return report, err
	}
	if plan.Empty() {
		logger.Info("no images found; nothing will be moved", "skipped", len(report.Skipped))
		return report, nil
	}

	logger.Info("found images", "count", plan.Len(), "years", plan.Years())
	for _, year := range plan.Years() {
		if err := o.relocate(ctx, folder, year, plan.Images(year), report, logger); err != nil {
			return report, err
		}
	}

	logger.Info("organization complete",
		"moved", report.TotalMoved(),
		"conflicts", len(report.Conflicts),
		"skipped", len(report.Skipped),
		"errors", len(report.Errors),
	)
	return report, nil
}

// scan classifies the folder's direct children and builds the plan.
func (o *Organizer) scan(ctx context.Context, folder string, report *Report, logger *slog.Logger) (*Plan, error) {
	names, err := listNames(folder)
	if err != nil {
		return nil, fmt.Errorf("list folder: %w", err)
	}

	plan := NewPlan()
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(folder, name)

		// Regular-file check comes first: sniffing a directory is not portable.
		regular, err := isRegular(path)
		if err != nil {
			o.skip(report, logger, Skip{Path: path, Reason: ReasonUnreadable, Err: err})
			continue
		}
		if !regular {
			o.skip(report, logger, Skip{Path: path, Reason: ReasonNotRegular})
			continue
		}

		image, err := isImage(path)
		if err != nil {
			o.skip(report, logger, Skip{Path: path, Reason: ReasonUnreadable, Err: err})
			continue
		}
		if !image {
			o.skip(report, logger, Skip{Path: path, Reason: ReasonNotImage})
			continue
		}

		year := o.resolver.ResolveYear(path)
		plan.Add(year, ImageEntry{Path: path, Name: name})
	}
	return plan, nil
}

func (o *Organizer) skip(report *Report, logger *slog.Logger, s Skip) {
	report.recordSkip(s)
	if s.Err != nil {
		logger.Warn("skipping entry", "name", filepath.Base(s.Path), "reason", string(s.Reason), "error", s.Err)
		return
	}
	logger.Info("skipping entry", "name", filepath.Base(s.Path), "reason", string(s.Reason))
}

// relocate moves one year's images into folder/<year>.
func (o *Organizer) relocate(ctx context.Context, folder string, year yearresolver.YearKey, images []ImageEntry, report *Report, logger *slog.Logger) error {
	dir := filepath.Join(folder, string(year))
	report.addYear(year, dir, len(images))
	logger = logger.With("year", string(year))

	if !o.dryRun {
		if err := ensureDir(dir); err != nil {
			logger.Error("cannot create year folder", "dir", dir, "error", err)
			for _, img := range images {
				report.recordError(img.Path, "mkdir", err)
			}
			return nil
		}
	}

	for _, img := range images {
		if err := ctx.Err(); err != nil {
			return err
		}
		dst := filepath.Join(dir, img.Name)

		taken, err := exists(dst)
		if err != nil {
			logger.Error("cannot inspect destination", "name", img.Name, "error", err)
			report.recordError(img.Path, "inspect destination", err)
			continue
		}
		if taken {
			logger.Info("image already exists in year folder; keeping it in the original folder", "name", img.Name, "dir", dir)
			report.recordConflict(Conflict{Source: img.Path, Existing: dst, Year: year})
			continue
		}

		if o.dryRun {
			report.recordMove(Move{Source: img.Path, Destination: dst, Year: year, Via: ViaPlan})
			continue
		}

		method, err := fileutil.Move(img.Path, dst)
		if err != nil {
			logger.Error("move failed", "name", img.Name, "error", err)
			report.recordError(img.Path, "move", err)
			continue
		}
		logger.Debug("moved image", "name", img.Name, "via", string(method))
		report.recordMove(Move{Source: img.Path, Destination: dst, Year: year, Via: string(method)})
	}

	logger.Info("moved images", "dir", dir, "count", report.MovedFor(year))
	return nil
}

// ensureDir creates dir unless it already exists as a directory.
func ensureDir(dir string) error {
	err := os.Mkdir(dir, 0o755)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrExist) {
		return err
	}
	info, statErr := os.Stat(dir)
	if statErr != nil {
		return statErr
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}
	return nil
}

// exists reports whether anything, including a dangling symlink, occupies path.
func exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
