package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-sorter/internal/fileutil"
)

func crossDevice(oldpath, newpath string) error {
	return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: syscall.EXDEV}
}

func TestMoveRenames(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	dst := filepath.Join(dir, "2020", "a.jpg")
	require.NoError(t, os.WriteFile(src, []byte("pixels"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Dir(dst), 0o755))

	method, err := fileutil.Move(src, dst)
	require.NoError(t, err)
	assert.Equal(t, fileutil.MethodRename, method)

	assert.NoFileExists(t, src)
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(got))
}

func TestMoveFallsBackToCopyAcrossVolumes(t *testing.T) {
	restore := fileutil.SetRenameForTests(crossDevice)
	t.Cleanup(restore)

	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	dst := filepath.Join(dir, "2012", "a.jpg")
	require.NoError(t, os.WriteFile(src, []byte("cross volume content"), 0o640))
	require.NoError(t, os.Mkdir(filepath.Dir(dst), 0o755))
	mod := time.Date(2012, 6, 1, 20, 29, 13, 0, time.Local)
	require.NoError(t, os.Chtimes(src, mod, mod))

	method, err := fileutil.Move(src, dst)
	require.NoError(t, err)
	assert.Equal(t, fileutil.MethodCopy, method)

	assert.NoFileExists(t, src)
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "cross volume content", string(got))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mod), "mtime %v, want %v", info.ModTime(), mod)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestMoveCopyNeverOverwrites(t *testing.T) {
	restore := fileutil.SetRenameForTests(crossDevice)
	t.Cleanup(restore)

	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	dst := filepath.Join(dir, "b.jpg")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0o644))
	require.NoError(t, os.WriteFile(dst, []byte("existing"), 0o644))

	_, err := fileutil.Move(src, dst)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrExist), "got %v", err)

	assert.FileExists(t, src)
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "existing", string(got))
}

func TestMovePropagatesOtherRenameErrors(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "missing.jpg")

	_, err := fileutil.Move(src, filepath.Join(dir, "dst.jpg"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
}

func TestCopyFileVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	content := []byte("verified copy content")
	require.NoError(t, os.WriteFile(src, content, 0o644))
	require.NoError(t, fileutil.CopyFileVerified(src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, content, got)
	assert.FileExists(t, src)
}

func TestCopyFileVerifiedRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "dst")

	require.Error(t, fileutil.CopyFileVerified(dir, dst))
	assert.NoFileExists(t, dst)
}
