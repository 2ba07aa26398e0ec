//go:build !unix

package fileutil

import (
	"errors"
	"os"
)

// isCrossDevice treats any rename link error as a cross-volume move; the
// copy that follows refuses to overwrite an existing destination.
func isCrossDevice(err error) bool {
	var linkErr *os.LinkError
	return errors.As(err, &linkErr)
}
