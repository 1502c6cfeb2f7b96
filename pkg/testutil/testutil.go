// Package testutil contains helpers shared by tests: temporary directories
// and values overridden for the duration of a test.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// Cleanuper is the subset of testing.TB used by this package.
type Cleanuper interface {
	Cleanup(func())
}

// Set sets *p to v, and restores the old value when the test finishes.
func Set[T any](c Cleanuper, p *T, v T) {
	old := *p
	*p = v
	c.Cleanup(func() { *p = old })
}

// TempDir creates a temporary directory that is removed when the test
// finishes, and returns its path.
func TempDir(c Cleanuper) string {
	dir, err := os.MkdirTemp("", "arbortest")
	if err != nil {
		panic(err)
	}
	// The temp directory may be behind a symlink on some systems.
	dir, err = filepath.EvalSymlinks(dir)
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() {
		err := os.RemoveAll(dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to remove temp dir %s: %v\n", dir, err)
		}
	})
	return dir
}

// MustWriteFile writes data to a file, creating missing parent directories. It
// panics if an error occurs.
func MustWriteFile(filename string, data string) {
	err := os.MkdirAll(filepath.Dir(filename), 0700)
	if err != nil {
		panic(err)
	}
	err = os.WriteFile(filename, []byte(data), 0600)
	if err != nil {
		panic(err)
	}
}
