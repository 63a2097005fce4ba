// Package store persists project documents as JSON files in a single
// directory. It is deliberately dumb: bytes in, bytes out. Encoding and
// validating documents is the service layer's job, so the same codec
// serves both file-backed saves and documents uploaded directly.
//
// The filesystem is an afero.Fs so tests run against an in-memory fs
// and the binary runs against the real one.
package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/mediapotion/timeline-builder/internal/domain"
)

// FileStore reads and writes project documents under a base directory.
type FileStore struct {
	fs  afero.Fs
	dir string
}

// NewFileStore returns a FileStore rooted at dir on fsys. The directory
// is created on first save, not here, so constructing a store against a
// read-only location is harmless until used.
func NewFileStore(fsys afero.Fs, dir string) *FileStore {
	return &FileStore{fs: fsys, dir: dir}
}

// Save writes a document under name, creating the base directory as
// needed and replacing any existing file of the same name.
func (s *FileStore) Save(_ context.Context, name string, data []byte) error {
	if err := validName(name); err != nil {
		return err
	}
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("store.FileStore.Save: %w", err)
	}
	if err := afero.WriteFile(s.fs, filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("store.FileStore.Save: %w", err)
	}
	return nil
}

// Load returns the raw bytes of the named document.
// Returns domain.ErrNotFound when no such document exists.
func (s *FileStore) Load(_ context.Context, name string) ([]byte, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("store.FileStore.Load %q: %w", name, domain.ErrNotFound)
	}
	return data, nil
}

// List returns the names of all saved documents, sorted. A missing base
// directory means nothing has been saved yet and yields an empty list.
func (s *FileStore) List(_ context.Context) ([]string, error) {
	infos, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return []string{}, nil
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".json") {
			continue
		}
		names = append(names, info.Name())
	}
	sort.Strings(names)
	return names, nil
}

// validName rejects names that would escape the base directory.
func validName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("store: bad document name %q: %w", name, domain.ErrValidation)
	}
	return nil
}
