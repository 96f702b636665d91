// Package staging keeps local copies of images picked for an entity that has
// no server identifier yet. Each copy is addressed by an ephemeral reference
// ("local:<uuid>") that is only meaningful inside the running process.
package staging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/rentadmin/internal/client/models"
	"github.com/dmitrijs2005/rentadmin/internal/filex"
	"github.com/google/uuid"
)

var ErrUnknownRef = errors.New("unknown staged reference")

type entry struct {
	path string
	name string
}

// Store is a per-process staging directory. It is safe for concurrent use.
type Store struct {
	dir string

	mu      sync.Mutex
	entries map[string]entry
}

// NewStore creates a fresh session directory under baseDir.
func NewStore(baseDir string) (*Store, error) {
	dir, err := filex.EnsureDir(baseDir, uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("staging dir: %w", err)
	}
	return &Store{dir: dir, entries: make(map[string]entry)}, nil
}

// Dir is the session directory.
func (s *Store) Dir() string {
	return s.dir
}

// Stage copies r into the session directory and returns its ephemeral
// reference. name is the original file name, kept for the later upload.
func (s *Store) Stage(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := uuid.NewString()
	path := filepath.Join(s.dir, id+filepath.Ext(name))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("stage %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = filex.RemoveIfExists(path)
		return "", fmt.Errorf("stage %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = filex.RemoveIfExists(path)
		return "", fmt.Errorf("stage %s: %w", name, err)
	}

	ref := models.EphemeralPrefix + id

	s.mu.Lock()
	s.entries[ref] = entry{path: path, name: filepath.Base(name)}
	s.mu.Unlock()

	return ref, nil
}

// Open returns the staged content of ref with its original file name.
func (s *Store) Open(ref string) (io.ReadCloser, string, error) {
	s.mu.Lock()
	e, ok := s.entries[ref]
	s.mu.Unlock()
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrUnknownRef, ref)
	}

	f, err := os.Open(e.path)
	if err != nil {
		return nil, "", fmt.Errorf("open staged %s: %w", ref, err)
	}
	return f, e.name, nil
}

// Release removes the staged copy. Releasing an unknown reference fails with
// ErrUnknownRef.
func (s *Store) Release(ref string) error {
	s.mu.Lock()
	e, ok := s.entries[ref]
	delete(s.entries, ref)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRef, ref)
	}
	return filex.RemoveIfExists(e.path)
}

// Len is the number of live staged references.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close drops every reference and removes the session directory.
func (s *Store) Close() error {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
	return os.RemoveAll(s.dir)
}
