package fileutil

// SetRenameForTests swaps the rename used by Move and returns a restore func.
func SetRenameForTests(fn func(oldpath, newpath string) error) func() {
	prev := rename
	rename = fn
	return func() { rename = prev }
}
