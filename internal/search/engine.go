// Package search matches a keyword against the local and remote name
// spaces and drives the interactive action loop over the matches.
package search

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vietdv277/mmgmt/internal/config"
	"github.com/vietdv277/mmgmt/internal/transfer"
	"github.com/vietdv277/mmgmt/pkg/provider"
	"github.com/vietdv277/mmgmt/pkg/types"
)

// Engine performs keyword searches over the configured local root and
// the remote bucket.
type Engine struct {
	store  provider.ObjectStore
	cfg    *config.Config
	logger *log.Logger
}

// NewEngine creates a search Engine.
func NewEngine(store provider.ObjectStore, cfg *config.Config, logger *log.Logger) *Engine {
	return &Engine{store: store, cfg: cfg, logger: logger}
}

// Result holds one search's matches. Local paths are relative to the
// configured root and sorted; remote objects keep the backend's listing
// order, which for S3 is lexicographic by key. Repeated searches over an
// unchanged namespace return identical results.
type Result struct {
	Keyword string
	Local   []string
	Remote  []types.Object
}

// Match reports whether keyword occurs in name. Matching is substring
// based and case-insensitive: media names mix cases freely and remote
// keys are derived from them.
func Match(keyword, name string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(keyword))
}

// Search matches keyword against local file names under the configured
// root and against remote keys.
func (e *Engine) Search(ctx context.Context, keyword string) (*Result, error) {
	local, err := e.localMatches(keyword)
	if err != nil {
		return nil, err
	}

	objects, err := e.store.List(ctx, e.cfg.Prefix)
	if err != nil {
		return nil, err
	}
	var remote []types.Object
	for _, obj := range objects {
		if Match(keyword, obj.Key) {
			remote = append(remote, obj)
		}
	}

	return &Result{Keyword: keyword, Local: local, Remote: remote}, nil
}

func (e *Engine) localMatches(keyword string) ([]string, error) {
	matches, err := LocalFiles(e.cfg.LocalRoot, keyword)
	if err != nil {
		return nil, err
	}
	if matches == nil {
		e.logger.Debug("no local matches", "root", e.cfg.LocalRoot, "keyword", keyword)
	}
	return matches, nil
}

// LocalFiles returns the paths of all files under root whose path relative
// to root matches keyword (empty keyword matches everything). Paths are
// slash-separated, relative to root, and sorted. A missing root yields no
// matches rather than an error.
func LocalFiles(root, keyword string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("search local root: %w", err)
	}

	var matches []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if keyword == "" || Match(keyword, rel) {
			matches = append(matches, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("search local root: %w", err)
	}

	sort.Strings(matches)
	return matches, nil
}

// downloader builds the Downloader used by the action loop. Split out so
// tests can point it at a temp directory.
func (e *Engine) downloader(destDir string) *transfer.Downloader {
	return transfer.NewDownloader(e.store, destDir, e.logger)
}
