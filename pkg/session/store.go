package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// FileStore keeps the session as a single JSON record at a well-known path.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (f *FileStore) Save(s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.Path, data, 0o600)
}

func (f *FileStore) Load() (*Session, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemStore is the in-memory Store used by tests.
type MemStore struct {
	session *Session
}

func (m *MemStore) Save(s *Session) error {
	copied := *s
	m.session = &copied
	return nil
}

func (m *MemStore) Load() (*Session, error) {
	if m.session == nil {
		return nil, os.ErrNotExist
	}
	copied := *m.session
	return &copied, nil
}

func (m *MemStore) Clear() error {
	m.session = nil
	return nil
}
