// Package trash implements delete-via-rename into a per-process temporary
// directory, with a collision-avoiding destination helper shared with the
// paste path, grounded on the teacher's paste suffixing logic.
package trash

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Trash is a scratch directory that receives deleted items for the
// lifetime of the process.
type Trash struct {
	Dir string
}

// New creates a fresh, uniquely named trash directory under the OS temp
// dir.
func New() (*Trash, error) {
	dir, err := os.MkdirTemp("", "rfm-trash-"+uuid.NewString())
	if err != nil {
		return nil, err
	}
	return &Trash{Dir: dir}, nil
}

// Close removes the trash directory and everything in it.
func (t *Trash) Close() error {
	return os.RemoveAll(t.Dir)
}

// Delete moves src into the trash, avoiding name collisions with whatever
// is already there.
func (t *Trash) Delete(src string) error {
	dest := GetDestination(src, t.Dir)
	return os.Rename(src, dest)
}

// GetDestination returns a path under destDir for the base name of src,
// suffixing with " (n)" before the extension as many times as needed to
// avoid colliding with an existing entry.
func GetDestination(src, destDir string) string {
	name := filepath.Base(src)
	candidate := filepath.Join(destDir, name)
	if _, err := os.Lstat(candidate); os.IsNotExist(err) {
		return candidate
	}

	ext := filepath.Ext(name)
	base := name[:len(name)-len(ext)]
	for n := 1; ; n++ {
		candidate = filepath.Join(destDir, fmt.Sprintf("%s (%d)%s", base, n, ext))
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
