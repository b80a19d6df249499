package feed

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	api "github.com/etesami/earthquake-feed/api"
)

// Cache is the durable copy of the last successfully fetched document.
type Cache interface {
	// Read returns found=false with a nil error when nothing is cached yet.
	Read() (doc *api.FeedDocument, found bool, err error)
	Write(doc *api.FeedDocument) error
}

// FileCache keeps the document in a single file. It assumes it is the
// only writer of that file.
type FileCache struct {
	path string
}

func NewFileCache(path string) *FileCache {
	return &FileCache{path: path}
}

func (c *FileCache) Path() string { return c.path }

func (c *FileCache) Read() (*api.FeedDocument, bool, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache %s: %w", c.path, err)
	}
	doc, err := api.DecodeFeed(data)
	if err != nil {
		return nil, false, fmt.Errorf("parsing cache %s: %w", c.path, err)
	}
	return doc, true, nil
}

// Write replaces the cached document. The new content goes to a temp file
// in the same directory and is renamed over the old one, so a failed write
// never leaves a truncated artifact behind.
func (c *FileCache) Write(doc *api.FeedDocument) error {
	data, err := doc.Bytes()
	if err != nil {
		return fmt.Errorf("encoding cache document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), "."+filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for cache: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing cache: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing cache: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		return fmt.Errorf("committing cache: %w", err)
	}
	committed = true
	return nil
}
