package media

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists upload contents keyed by stored name.
type FileStore interface {
	Save(name string, r io.Reader) (int64, error)
	Remove(name string) error
}

// DiskStore writes uploads under one directory.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("media: create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Save(name string, r io.Reader) (int64, error) {
	// stored names are generated, never caller-controlled, but keep
	// them inside the directory anyway
	path := filepath.Join(s.dir, filepath.Base(name))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, err
	}
	written, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return 0, err
	}
	return written, nil
}

func (s *DiskStore) Remove(name string) error {
	return os.Remove(filepath.Join(s.dir, filepath.Base(name)))
}

// MemoryStore holds upload contents in memory for tests.
type MemoryStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{files: make(map[string][]byte)}
}

func (s *MemoryStore) Save(name string, r io.Reader) (int64, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, r)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	s.files[name] = buf.Bytes()
	s.mu.Unlock()
	return n, nil
}

func (s *MemoryStore) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[name]; !ok {
		return os.ErrNotExist
	}
	delete(s.files, name)
	return nil
}

// Has reports whether a stored name still has contents.
func (s *MemoryStore) Has(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[name]
	return ok
}
