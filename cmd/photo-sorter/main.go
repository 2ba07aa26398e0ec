// photo-sorter moves the images of a folder into year subfolders based on
// when each photo was taken.
//
// Usage:
//
//	photo-sorter ~/Pictures/Unsorted            # sort images into YYYY/ folders
//	photo-sorter --dry-run ~/Pictures/Unsorted  # preview without moving
//
// The capture date comes from EXIF metadata when present and otherwise from
// the earlier of the file's creation and modification times. Images whose
// name already exists in their year folder are left in place, so re-running
// is always safe.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
