// Package fsops implements the filesystem mutations the panel manager
// issues: recursive copy/move with collision-avoiding destinations, mkdir
// /touch for item creation, and the bulk-rename file-diff routine.
package fsops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wilbur182/rfm/internal/trash"
)

// ErrTypeMismatch is returned by CopyItem/MoveItem when the destination
// already holds an entry of a different kind (file vs directory) than the
// source, which is refused rather than silently resolved.
var ErrTypeMismatch = errors.New("fsops: destination exists with a different type")

// GetDestination delegates to trash's collision-avoiding suffix scheme so
// paste and delete share one policy for "what do we call the copy".
func GetDestination(src, destDir string) string {
	return trash.GetDestination(src, destDir)
}

// CopyItem recursively copies src into destDir. If overwrite is false and
// an entry of the same name already exists, a non-colliding name is
// chosen via GetDestination; if overwrite is true, a same-kind destination
// is written over in place (a file's contents are replaced; a directory's
// entries are copied into the existing directory, and entries found only in
// the destination are kept; an existing symlink is not replaced and the
// copy fails), while a different-kind collision is refused with
// ErrTypeMismatch regardless of overwrite.
func CopyItem(src, destDir string, overwrite bool) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}
	dest := filepath.Join(destDir, filepath.Base(src))
	if existing, err := os.Lstat(dest); err == nil {
		if existing.IsDir() != info.IsDir() {
			return ErrTypeMismatch
		}
		if !overwrite {
			dest = GetDestination(src, destDir)
		}
	}
	return copyPath(src, dest, info)
}

func copyPath(src, dest string, info os.FileInfo) error {
	if info.Mode()&os.ModeSymlink != 0 {
		target, err := os.Readlink(src)
		if err != nil {
			return err
		}
		return os.Symlink(target, dest)
	}
	if info.IsDir() {
		return copyDir(src, dest, info)
	}
	return copyFile(src, dest, info)
}

func copyDir(src, dest string, info os.FileInfo) error {
	if err := os.MkdirAll(dest, info.Mode()); err != nil {
		return err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, e := range entries {
		childInfo, err := e.Info()
		if err != nil {
			continue
		}
		if err := copyPath(filepath.Join(src, e.Name()), filepath.Join(dest, e.Name()), childInfo); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dest string, info os.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

// MoveItem moves src into destDir, renaming when possible and falling
// back to copy+delete across devices. Moving src into the directory it
// already lives in is a no-op. Otherwise collisions are handled as in
// CopyItem, except that with overwrite an existing same-kind destination
// is removed before the move.
func MoveItem(src, destDir string, overwrite bool) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}
	dest := filepath.Join(destDir, filepath.Base(src))
	if filepath.Clean(dest) == filepath.Clean(src) {
		return nil
	}
	if existing, err := os.Lstat(dest); err == nil {
		if existing.IsDir() != info.IsDir() {
			return ErrTypeMismatch
		}
		if !overwrite {
			dest = GetDestination(src, destDir)
		} else {
			os.RemoveAll(dest)
		}
	}
	if err := os.Rename(src, dest); err == nil {
		return nil
	}
	if err := copyPath(src, dest, info); err != nil {
		return err
	}
	return os.RemoveAll(src)
}

// RenameTo renames src to the exact path newPath (unlike MoveItem, which
// only moves into a directory under src's own base name), refusing a
// same-name-different-type collision.
func RenameTo(src, newPath string) error {
	if existing, err := os.Lstat(newPath); err == nil {
		srcInfo, err2 := os.Lstat(src)
		if err2 == nil && existing.IsDir() != srcInfo.IsDir() {
			return ErrTypeMismatch
		}
	}
	return os.Rename(src, newPath)
}

// Mkdir creates a directory at path, including any missing parents.
func Mkdir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// Touch creates an empty file at path if it does not already exist.
func Touch(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}

// WriteNameList writes the base names of paths, one per line, to tmpFile
// for the bulk-rename editor step.
func WriteNameList(paths []string, tmpFile string) error {
	var b strings.Builder
	for _, p := range paths {
		b.WriteString(filepath.Base(p))
		b.WriteString("\n")
	}
	return os.WriteFile(tmpFile, []byte(b.String()), 0o644)
}

// ErrLineCountMismatch is returned when the edited name list does not
// have exactly one line per input path.
var ErrLineCountMismatch = errors.New("fsops: renamed line count does not match selection count")

// ErrRenameCollision is returned when a derived destination already
// exists, or two derived destinations collide with each other.
var ErrRenameCollision = errors.New("fsops: rename destination collision")

// ApplyNameList reads tmpFile, derives new paths by replacing each
// original's base name with its corresponding edited line, validates
// collisions (against existing files and within the batch itself), and
// renames every item. No rename is performed if validation fails.
func ApplyNameList(paths []string, tmpFile string) error {
	data, err := os.ReadFile(tmpFile)
	if err != nil {
		return err
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != len(paths) {
		return ErrLineCountMismatch
	}

	newPaths := make([]string, len(paths))
	seen := make(map[string]bool, len(paths))
	for i, old := range paths {
		newPath := filepath.Join(filepath.Dir(old), lines[i])
		if seen[newPath] {
			return ErrRenameCollision
		}
		seen[newPath] = true
		if newPath != old {
			if _, err := os.Lstat(newPath); err == nil {
				return ErrRenameCollision
			}
		}
		newPaths[i] = newPath
	}

	for i, old := range paths {
		if old == newPaths[i] {
			continue
		}
		if err := os.Rename(old, newPaths[i]); err != nil {
			return fmt.Errorf("renaming %s to %s: %w", old, newPaths[i], err)
		}
	}
	return nil
}
