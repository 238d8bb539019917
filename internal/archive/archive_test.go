package archive

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readArchive extracts every entry of a tar.gz into name -> content.
// Directory entries map to nil content.
func readArchive(t *testing.T, path string) map[string][]byte {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	gr, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer gr.Close()

	entries := make(map[string][]byte)
	tr := tar.NewReader(gr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		if hdr.Typeflag == tar.TypeDir {
			entries[hdr.Name] = nil
			continue
		}
		data, err := io.ReadAll(tr)
		require.NoError(t, err)
		entries[hdr.Name] = data
	}
	return entries
}

func TestCreateFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(target, []byte("hello, tar"), 0o644))

	arch, err := Create(target)
	require.NoError(t, err)

	assert.Equal(t, target, arch.SourcePath)
	assert.Equal(t, filepath.Join(dir, "a.txt.tar.gz"), arch.ArchivePath)
	assert.Equal(t, "a.txt.tar.gz", arch.Name())
	assert.Positive(t, arch.Size)

	entries := readArchive(t, arch.ArchivePath)
	require.Len(t, entries, 1)
	assert.Equal(t, []byte("hello, tar"), entries["a.txt"])
}

func TestCreateFileOutsideWorkingDirectory(t *testing.T) {
	// Absolute targets must archive under their base name, not their
	// full path.
	dir := t.TempDir()
	target := filepath.Join(dir, "deep", "nested")
	require.NoError(t, os.MkdirAll(target, 0o755))
	file := filepath.Join(target, "clip.mp4")
	require.NoError(t, os.WriteFile(file, []byte("bits"), 0o644))

	arch, err := Create(file)
	require.NoError(t, err)

	entries := readArchive(t, arch.ArchivePath)
	require.Len(t, entries, 1)
	assert.Contains(t, entries, "clip.mp4")
}

func TestCreateDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "show")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "season1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "e1.mkv"), []byte("episode one"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(target, "season1", "e2.mkv"), []byte("episode two"), 0o644))

	arch, err := Create(target)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "show.tar.gz"), arch.ArchivePath)

	entries := readArchive(t, arch.ArchivePath)

	// Every entry lives under a single top-level root named after the
	// target so extraction reproduces the original layout.
	for name := range entries {
		assert.True(t, name == "show/" || strings.HasPrefix(name, "show/"),
			"entry %q escapes the root", name)
	}
	assert.Equal(t, []byte("episode one"), entries["show/e1.mkv"])
	assert.Equal(t, []byte("episode two"), entries["show/season1/e2.mkv"])
}

func TestCreateTrailingSlash(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "show")
	require.NoError(t, os.MkdirAll(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "e1.mkv"), []byte("x"), 0o644))

	arch, err := Create(target + string(os.PathSeparator))
	require.NoError(t, err)
	assert.Equal(t, "show.tar.gz", arch.Name())
}

func TestCreateMissingTarget(t *testing.T) {
	dir := t.TempDir()

	_, err := Create(filepath.Join(dir, "nope.mkv"))
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "nope.mkv.tar.gz"))
}
