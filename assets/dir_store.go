// SPDX-License-Identifier: EPL-2.0

package assets

import (
	"os"
	"path/filepath"
)

// DirStore resolves asset names to files "<dir>/<name>.wav" on disk.
type DirStore struct {
	dir string
}

// NewDirStore creates a DirStore rooted at dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// Get implements Store.
func (s *DirStore) Get(name string) ([]byte, bool) {
	data, err := os.ReadFile(filepath.Join(s.dir, name+".wav"))
	if err != nil {
		return nil, false
	}
	return data, true
}
