// Package archive produces the compressed artifact uploaded for each
// target. Files and directories go through the same tar code path: the
// archive always carries a single top-level entry named after the target's
// base name, so extraction reproduces the original name no matter where
// the target was archived from.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/vietdv277/mmgmt/pkg/types"
)

// Suffix is appended to the target's base name to form the archive name.
const Suffix = ".tar.gz"

// Create compresses the file or directory at targetPath into a gzip tar
// written next to it as {base}.tar.gz. A partial archive is removed before
// the error is returned, so a failed run never leaves junk behind.
func Create(targetPath string) (*types.Archive, error) {
	targetPath = filepath.Clean(targetPath)

	info, err := os.Lstat(targetPath)
	if err != nil {
		return nil, fmt.Errorf("archive: stat target: %w", err)
	}

	base := filepath.Base(targetPath)
	archivePath := filepath.Join(filepath.Dir(targetPath), base+Suffix)

	out, err := os.Create(archivePath)
	if err != nil {
		return nil, fmt.Errorf("archive: create %s: %w", archivePath, err)
	}

	if err := writeTar(out, targetPath, base, info); err != nil {
		out.Close()
		os.Remove(archivePath)
		return nil, err
	}
	if err := out.Close(); err != nil {
		os.Remove(archivePath)
		return nil, fmt.Errorf("archive: close %s: %w", archivePath, err)
	}

	st, err := os.Stat(archivePath)
	if err != nil {
		return nil, fmt.Errorf("archive: stat %s: %w", archivePath, err)
	}

	return &types.Archive{
		SourcePath:  targetPath,
		ArchivePath: archivePath,
		Size:        st.Size(),
		CreatedAt:   time.Now(),
	}, nil
}

func writeTar(w io.Writer, targetPath, base string, info os.FileInfo) error {
	gw := gzip.NewWriter(w)
	tw := tar.NewWriter(gw)

	var err error
	if info.IsDir() {
		err = filepath.WalkDir(targetPath, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			rel, relErr := filepath.Rel(targetPath, path)
			if relErr != nil {
				return relErr
			}
			name := base
			if rel != "." {
				name = base + "/" + filepath.ToSlash(rel)
			}
			fi, infoErr := d.Info()
			if infoErr != nil {
				return infoErr
			}
			return addEntry(tw, path, name, fi)
		})
	} else {
		err = addEntry(tw, targetPath, base, info)
	}
	if err != nil {
		tw.Close()
		gw.Close()
		return fmt.Errorf("archive: %w", err)
	}

	if err := tw.Close(); err != nil {
		gw.Close()
		return fmt.Errorf("archive: close tar stream: %w", err)
	}
	if err := gw.Close(); err != nil {
		return fmt.Errorf("archive: close gzip stream: %w", err)
	}
	return nil
}

func addEntry(tw *tar.Writer, path, name string, fi os.FileInfo) error {
	var link string
	if fi.Mode()&os.ModeSymlink != 0 {
		target, err := os.Readlink(path)
		if err != nil {
			return err
		}
		link = target
	}

	hdr, err := tar.FileInfoHeader(fi, link)
	if err != nil {
		return err
	}
	hdr.Name = name
	if fi.IsDir() {
		hdr.Name += "/"
	}

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	if !fi.Mode().IsRegular() {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(tw, f); err != nil {
		return err
	}
	return nil
}
