// Package transfer contains the upload and download orchestrators. Each
// invocation owns its own state; nothing is shared between targets.
package transfer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vietdv277/mmgmt/internal/archive"
	"github.com/vietdv277/mmgmt/internal/config"
	"github.com/vietdv277/mmgmt/internal/relocate"
	"github.com/vietdv277/mmgmt/pkg/provider"
	"github.com/vietdv277/mmgmt/pkg/types"
)

// Uploader drives a single target through archive, put, relocate and
// cleanup. The local archive is deleted only after a confirmed put, so an
// archive survives on disk if and only if its transfer did not succeed;
// a retry is then cheap because nothing has to be recompressed.
type Uploader struct {
	store  provider.ObjectStore
	cfg    *config.Config
	logger *log.Logger
}

// NewUploader creates an Uploader over the given store and configuration.
func NewUploader(store provider.ObjectStore, cfg *config.Config, logger *log.Logger) *Uploader {
	return &Uploader{store: store, cfg: cfg, logger: logger}
}

// RemoteKey derives the object key for an archive name. A configured
// prefix is joined with a single slash; no prefix means the bare name.
func RemoteKey(prefix, archiveName string) string {
	if prefix == "" {
		return archiveName
	}
	return strings.TrimSuffix(prefix, "/") + "/" + archiveName
}

// Upload runs the full transfer for one target and reports the outcome.
// Relocation is best-effort: a failure there is logged as a warning and
// the target stays at its original path, but the transfer still counts
// as a success.
func (u *Uploader) Upload(ctx context.Context, targetPath string) types.OperationOutcome {
	outcome := types.OperationOutcome{Target: targetPath}

	// Configuration is checked before any side effect, local or remote.
	if err := u.cfg.Validate(true); err != nil {
		outcome.FailedStage = types.StageConfig
		outcome.Err = err
		return outcome
	}

	arch, err := archive.Create(targetPath)
	if err != nil {
		outcome.FailedStage = types.StageArchive
		outcome.Err = err
		return outcome
	}
	u.logger.Debug("archived", "target", targetPath, "archive", arch.ArchivePath, "bytes", arch.Size)

	outcome.Key = RemoteKey(u.cfg.Prefix, arch.Name())

	etag, err := u.put(ctx, outcome.Key, arch.ArchivePath)
	if err != nil {
		outcome.FailedStage = types.StageTransfer
		outcome.Err = err
		outcome.ArchiveRetained = true
		u.logger.Error("upload failed, archive kept for retry",
			"target", targetPath, "archive", arch.ArchivePath, "err", err)
		return outcome
	}
	u.logger.Info("uploaded", "key", outcome.Key, "etag", etag, "bytes", arch.Size)
	outcome.Success = true

	if dest, err := relocate.Move(targetPath, u.cfg.CompletedDir); err != nil {
		u.logger.Warn("could not move target to completed directory",
			"target", targetPath, "err", err)
	} else {
		outcome.CompletedPath = dest
	}

	if err := os.Remove(arch.ArchivePath); err != nil {
		outcome.ArchiveRetained = true
		u.logger.Warn("could not remove archive after upload",
			"archive", arch.ArchivePath, "err", err)
	}

	return outcome
}

func (u *Uploader) put(ctx context.Context, key, archivePath string) (string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return "", fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	return u.store.Put(ctx, key, f)
}

// UploadAll uploads every entry of dir as an independent target, in
// lexicographic order (os.ReadDir returns sorted entries). Entries whose
// base name is in the skip set are excluded; matching is on the name
// component only, never the full path. One failed target never aborts
// the rest of the batch.
func (u *Uploader) UploadAll(ctx context.Context, dir string) ([]types.OperationOutcome, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	skip := u.cfg.SkipSet()
	var outcomes []types.OperationOutcome
	for _, entry := range entries {
		if _, ok := skip[entry.Name()]; ok {
			u.logger.Debug("skipping", "name", entry.Name())
			continue
		}
		outcomes = append(outcomes, u.Upload(ctx, filepath.Join(dir, entry.Name())))
	}
	return outcomes, nil
}
