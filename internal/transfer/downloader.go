package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vietdv277/mmgmt/pkg/provider"
)

// ErrNotRestored is returned when an object sits in an archival storage
// class and no completed restore is available.
var ErrNotRestored = errors.New("object is archived and not restored; request a restore first")

// Downloader materializes remote objects into destDir.
type Downloader struct {
	store   provider.ObjectStore
	destDir string
	logger  *log.Logger
}

// NewDownloader creates a Downloader writing into destDir ("." for the
// working directory).
func NewDownloader(store provider.ObjectStore, destDir string, logger *log.Logger) *Downloader {
	if destDir == "" {
		destDir = "."
	}
	return &Downloader{store: store, destDir: destDir, logger: logger}
}

// Download fetches key into destDir under the key's base name and returns
// the local path. A missing key surfaces as provider.ErrObjectNotFound,
// distinct from backend failures. No partial file survives an error.
func (d *Downloader) Download(ctx context.Context, key string) (string, error) {
	obj, err := d.store.Head(ctx, key)
	if err != nil {
		return "", err
	}
	if obj.Archived() && !restoreComplete(obj.Restore) {
		return "", fmt.Errorf("download %s (%s): %w", key, obj.StorageClass, ErrNotRestored)
	}

	body, err := d.store.Get(ctx, key)
	if err != nil {
		return "", err
	}
	defer body.Close()

	dest := filepath.Join(d.destDir, path.Base(key))
	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", key, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(dest)
		return "", fmt.Errorf("download %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("download %s: %w", key, err)
	}

	d.logger.Info("downloaded", "key", key, "dest", dest, "bytes", obj.Size)
	return dest, nil
}

// RequestRestore issues a restore request for an archived object and
// returns without waiting. GLACIER restores use the expedited tier,
// DEEP_ARCHIVE the standard one.
func (d *Downloader) RequestRestore(ctx context.Context, key string) error {
	obj, err := d.store.Head(ctx, key)
	if err != nil {
		return err
	}
	if !obj.Archived() {
		return fmt.Errorf("restore %s: object is in %s and needs no restore", key, obj.StorageClass)
	}
	if strings.Contains(obj.Restore, `ongoing-request="true"`) {
		return fmt.Errorf("restore %s: a restore is already in progress", key)
	}

	tier := "Standard"
	if obj.StorageClass == "GLACIER" {
		tier = "Expedited"
	}
	if err := d.store.Restore(ctx, key, tier); err != nil {
		return err
	}
	d.logger.Info("restore requested", "key", key, "class", obj.StorageClass, "tier", tier)
	return nil
}

// restoreComplete parses the x-amz-restore header shape, e.g.
// `ongoing-request="false", expiry-date="..."`.
func restoreComplete(restore string) bool {
	return strings.Contains(restore, `ongoing-request="false"`)
}
