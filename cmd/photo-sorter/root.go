package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"photo-sorter/internal/logging"
	"photo-sorter/internal/organizer"
	"photo-sorter/internal/yearresolver"
)

type sortOptions struct {
	dryRun        bool
	filenameDates bool
	utc           bool
	logLevel      string
	logFormat     string
}

func newRootCommand() *cobra.Command {
	var opts sortOptions

	cmd := &cobra.Command{
		Use:   "photo-sorter <folder>",
		Short: "Sort the images of a folder into year subfolders",
		Long: `Sort the images directly inside <folder> into <folder>/<year>/.

The year comes from the image's EXIF capture date, or from the earlier of
its creation and modification times when no capture date is recorded.
Subdirectories and non-image files are left untouched. An image whose name
already exists in its year folder stays where it is.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", false, "Show what would be moved without moving anything")
	flags.BoolVar(&opts.filenameDates, "filename-dates", false, "Use dates in file names (IMG_20250619_...) before file timestamps")
	flags.BoolVar(&opts.utc, "utc", false, "Compute years from file timestamps in UTC instead of local time")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "console", "Log format (console, json)")

	return cmd
}

func runSort(ctx context.Context, stdout, stderr io.Writer, folder string, opts sortOptions) error {
	logger, err := logging.New(logging.Options{Level: opts.logLevel, Format: opts.logFormat, Writer: stderr})
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(folder)
	if err != nil {
		return fmt.Errorf("resolve folder: %w", err)
	}

	lock, err := lockFolder(abs)
	if err != nil {
		return err
	}
	defer lock.Unlock()

	resolverOpts := []yearresolver.Option{yearresolver.WithLogger(logger)}
	if opts.utc {
		resolverOpts = append(resolverOpts, yearresolver.WithLocation(time.UTC))
	}
	if opts.filenameDates {
		resolverOpts = append(resolverOpts, yearresolver.WithFilenameDates())
	}

	org := organizer.New(
		organizer.WithLogger(logger),
		organizer.WithDryRun(opts.dryRun),
		organizer.WithResolver(yearresolver.New(resolverOpts...)),
	)

	report, err := org.Organize(ctx, abs)
	if err != nil {
		return err
	}

	renderReport(stdout, report, shouldStyle(stdout))
	return nil
}
