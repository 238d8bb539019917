// Package relocate moves uploaded originals into the completed directory.
package relocate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoCompletedDir is returned when no completed directory is configured.
var ErrNoCompletedDir = errors.New("relocate: completed directory not configured")

// Move relocates source into completedRoot, creating the root if absent.
// Name collisions are resolved by appending _1, _2, ... before the file
// extension (after the name for directories and extensionless names); an
// existing entry is never overwritten. The move is an atomic rename when
// possible, falling back to copy-then-delete across volumes.
func Move(source, completedRoot string) (string, error) {
	if completedRoot == "" {
		return "", ErrNoCompletedDir
	}

	info, err := os.Stat(source)
	if err != nil {
		return "", fmt.Errorf("relocate: stat source: %w", err)
	}

	if err := os.MkdirAll(completedRoot, 0o755); err != nil {
		return "", fmt.Errorf("relocate: create completed directory: %w", err)
	}

	dest, err := availableName(completedRoot, filepath.Base(source), info.IsDir())
	if err != nil {
		return "", err
	}

	if err := os.Rename(source, dest); err == nil {
		return dest, nil
	}

	// Rename failed, likely a cross-volume move. Copy then delete the
	// source; a half-written destination must not survive a failure.
	if err := copyAll(source, dest); err != nil {
		os.RemoveAll(dest)
		return "", fmt.Errorf("relocate: copy %s: %w", source, err)
	}
	if err := os.RemoveAll(source); err != nil {
		return "", fmt.Errorf("relocate: remove source after copy: %w", err)
	}
	return dest, nil
}

// availableName finds the first unused name under root, suffixing _n
// deterministically on collision.
func availableName(root, name string, isDir bool) (string, error) {
	for n := 0; ; n++ {
		dest := filepath.Join(root, candidate(name, n, isDir))
		if _, err := os.Lstat(dest); err != nil {
			if os.IsNotExist(err) {
				return dest, nil
			}
			return "", fmt.Errorf("relocate: stat %s: %w", dest, err)
		}
	}
}

func candidate(name string, n int, isDir bool) string {
	if n == 0 {
		return name
	}
	if isDir {
		return fmt.Sprintf("%s_%d", name, n)
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if stem == "" {
		// Dotfiles like .DS_Store have no usable stem.
		return fmt.Sprintf("%s_%d", name, n)
	}
	return fmt.Sprintf("%s_%d%s", stem, n, ext)
}

func copyAll(source, dest string) error {
	info, err := os.Stat(source)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return copyFile(source, dest, info.Mode())
	}

	return filepath.WalkDir(source, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, fi.Mode())
	})
}

func copyFile(source, dest string, mode os.FileMode) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
