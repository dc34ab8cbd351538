package fileutil

// SetRenameForTests overrides the rename primitive during tests.
func SetRenameForTests(fn func(string, string) error) func() {
	previous := renameFile
	renameFile = fn
	return func() {
		renameFile = previous
	}
}
