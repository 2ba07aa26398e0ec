package main

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

var errFolderBusy = errors.New("another photo-sorter run is already sorting this folder")

// lockPath places the lock outside the folder being sorted, so the folder
// gains no files beyond the year subfolders.
func lockPath(folder string) string {
	sum := sha256.Sum256([]byte(folder))
	return filepath.Join(os.TempDir(), "photo-sorter-"+hex.EncodeToString(sum[:8])+".lock")
}

// lockFolder takes a non-blocking advisory lock for folder.
func lockFolder(folder string) (*flock.Flock, error) {
	lock := flock.New(lockPath(folder))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire folder lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", errFolderBusy, folder)
	}
	return lock, nil
}
