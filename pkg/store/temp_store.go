package store

import (
	"path/filepath"

	"arbor.elv.sh/pkg/testutil"
)

// MustTempStore returns a Store backed by a temporary file. The Store and the
// file are cleaned up when the test finishes.
func MustTempStore(c testutil.Cleanuper) DBStore {
	dir := testutil.TempDir(c)
	st, err := NewStore(filepath.Join(dir, "db"))
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() { st.Close() })
	return st
}
