package client

import (
	"os"
	"strings"
)

// TokenStore holds the session's auth token between runs. It is the
// counterpart of the browser dashboard's local storage.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// MemoryStore keeps the token in memory only.
type MemoryStore struct {
	token string
}

func (m *MemoryStore) Load() (string, error) { return m.token, nil }

func (m *MemoryStore) Save(token string) error { m.token = token; return nil }

func (m *MemoryStore) Clear() error { m.token = ""; return nil }

// FileStore persists the token to a file readable only by the owner.
type FileStore struct {
	Path string
}

func (f *FileStore) Load() (string, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

func (f *FileStore) Save(token string) error {
	return os.WriteFile(f.Path, []byte(token), 0600)
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
