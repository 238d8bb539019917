package transfer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietdv277/mmgmt/pkg/provider"
	"github.com/vietdv277/mmgmt/pkg/types"
)

func TestDownload(t *testing.T) {
	dest := t.TempDir()
	store := newFakeStore()
	store.add(types.Object{Key: "media/a.txt.tar.gz"}, []byte("archive bytes"))

	dl := NewDownloader(store, dest, testLogger())
	path, err := dl.Download(context.Background(), "media/a.txt.tar.gz")
	require.NoError(t, err)

	// The file lands under the key's base name.
	assert.Equal(t, filepath.Join(dest, "a.txt.tar.gz"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "archive bytes", string(data))
}

func TestDownloadNotFound(t *testing.T) {
	dl := NewDownloader(newFakeStore(), t.TempDir(), testLogger())

	_, err := dl.Download(context.Background(), "missing.tar.gz")
	assert.ErrorIs(t, err, provider.ErrObjectNotFound)
}

func TestDownloadArchivedNotRestored(t *testing.T) {
	dest := t.TempDir()
	store := newFakeStore()
	store.add(types.Object{Key: "old.tar.gz", StorageClass: "DEEP_ARCHIVE"}, []byte("cold"))

	dl := NewDownloader(store, dest, testLogger())
	_, err := dl.Download(context.Background(), "old.tar.gz")

	assert.ErrorIs(t, err, ErrNotRestored)
	assert.NoFileExists(t, filepath.Join(dest, "old.tar.gz"))
}

func TestDownloadRestoredCopy(t *testing.T) {
	dest := t.TempDir()
	store := newFakeStore()
	store.add(types.Object{
		Key:          "old.tar.gz",
		StorageClass: "GLACIER",
		Restore:      `ongoing-request="false", expiry-date="Fri, 29 Aug 2026 00:00:00 GMT"`,
	}, []byte("warm again"))

	dl := NewDownloader(store, dest, testLogger())
	path, err := dl.Download(context.Background(), "old.tar.gz")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestRequestRestoreTiers(t *testing.T) {
	store := newFakeStore()
	store.add(types.Object{Key: "g.tar.gz", StorageClass: "GLACIER"}, nil)
	store.add(types.Object{Key: "d.tar.gz", StorageClass: "DEEP_ARCHIVE"}, nil)
	dl := NewDownloader(store, t.TempDir(), testLogger())

	require.NoError(t, dl.RequestRestore(context.Background(), "g.tar.gz"))
	require.NoError(t, dl.RequestRestore(context.Background(), "d.tar.gz"))

	assert.Equal(t, "Expedited", store.restored["g.tar.gz"])
	assert.Equal(t, "Standard", store.restored["d.tar.gz"])
}

func TestRequestRestoreStandardObject(t *testing.T) {
	store := newFakeStore()
	store.add(types.Object{Key: "a.tar.gz"}, nil)
	dl := NewDownloader(store, t.TempDir(), testLogger())

	err := dl.RequestRestore(context.Background(), "a.tar.gz")
	assert.ErrorContains(t, err, "needs no restore")
}

func TestRequestRestoreAlreadyInProgress(t *testing.T) {
	store := newFakeStore()
	store.add(types.Object{
		Key:          "g.tar.gz",
		StorageClass: "GLACIER",
		Restore:      `ongoing-request="true"`,
	}, nil)
	dl := NewDownloader(store, t.TempDir(), testLogger())

	err := dl.RequestRestore(context.Background(), "g.tar.gz")
	assert.ErrorContains(t, err, "already in progress")
	assert.Empty(t, store.restored)
}
