package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/djherbis/times"
)

// Method records how a file reached its destination.
type Method string

const (
	// MethodRename is a same-volume rename.
	MethodRename Method = "rename"
	// MethodCopy is a verified copy followed by removal of the source.
	MethodCopy Method = "copy"
)

// rename is swapped out by tests to simulate cross-device moves.
var rename = os.Rename

// Move relocates src to dst. It tries a rename first and falls back to a
// verified copy plus delete when src and dst live on different volumes.
// The copy keeps the source's permission bits and access/modification times.
func Move(src, dst string) (Method, error) {
	err := rename(src, dst)
	if err == nil {
		return MethodRename, nil
	}
	if !isCrossDevice(err) {
		return "", err
	}

	if err := CopyFileVerified(src, dst); err != nil {
		return "", fmt.Errorf("copy across volumes: %w", err)
	}
	if err := copyTimes(src, dst); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("preserve timestamps: %w", err)
	}
	if err := os.Remove(src); err != nil {
		return MethodCopy, fmt.Errorf("remove source after copy: %w", err)
	}
	return MethodCopy, nil
}

// CopyFileVerified streams src to dst with SHA256 + size integrity
// verification. dst must not exist; it is created with src's permission bits
// and removed again on any failure.
func CopyFileVerified(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if !srcInfo.Mode().IsRegular() {
		return fmt.Errorf("copy %s: not a regular file", src)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}

	if err := copyAndVerify(out, in, srcInfo.Size()); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return err
	}
	return nil
}

func copyAndVerify(out io.Writer, in io.Reader, size int64) error {
	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	multi := io.MultiWriter(out, dstHasher)

	written, err := io.Copy(multi, tee)
	if err != nil {
		return err
	}
	if written != size {
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", size, written)
	}
	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		return errors.New("copy hash mismatch: file corrupted during copy")
	}
	return nil
}

// copyTimes carries src's access and modification times over to dst.
func copyTimes(src, dst string) error {
	ts, err := times.Stat(src)
	if err != nil {
		return err
	}
	return os.Chtimes(dst, ts.AccessTime(), ts.ModTime())
}
