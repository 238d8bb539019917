package types

import (
	"path/filepath"
	"time"
)

// Archive is the compressed artifact produced from a single upload target.
// It lives next to the target on local disk until the upload is confirmed.
type Archive struct {
	SourcePath  string    `json:"source_path"`
	ArchivePath string    `json:"archive_path"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

// Name returns the archive file name, which is also the tail of the
// remote object key.
func (a *Archive) Name() string {
	return filepath.Base(a.ArchivePath)
}
