package organizer

import (
	"errors"
	"io"
	"os"
	"sort"

	"github.com/h2non/filetype"
)

// sniffLen is the header size filetype needs to recognise every format.
const sniffLen = 261

// isImage classifies the file at path by its leading bytes, not its extension.
func isImage(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	return filetype.IsImage(head[:n]), nil
}

// listNames returns the names of folder's direct children in sorted order.
func listNames(folder string) ([]string, error) {
	dir, err := os.Open(folder)
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	names, err := dir.Readdirnames(-1)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// isRegular reports whether path is a regular file, without following symlinks.
func isRegular(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
