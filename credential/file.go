package credential

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// fileBlob is the on-disk layout. Identity stays opaque JSON so the store
// never depends on the caller's identity shape.
type fileBlob struct {
	AccessToken  string          `json:"accessToken,omitempty"`
	RefreshToken string          `json:"refreshToken,omitempty"`
	Identity     json.RawMessage `json:"identity,omitempty"`
}

// FileStore persists the credential as a single 0600 JSON file. It is the
// localStorage analog for CLI and desktop consumers: writes are synchronous
// (write temp file, rename) and a corrupt file is treated as no session and
// removed on the next read.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore describes the newfilestore operation and its observable behavior.
//
// NewFileStore may return an error when input validation, dependency calls, or security checks fail.
// NewFileStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("credential file path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) read() (fileBlob, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			// unreadable file: treat as no session and drop it
			_ = os.Remove(s.path)
		}
		return fileBlob{}, false
	}

	var blob fileBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		_ = os.Remove(s.path)
		return fileBlob{}, false
	}
	return blob, true
}

func (s *FileStore) write(blob fileBlob) error {
	data, err := json.Marshal(blob)
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Get describes the get operation and its observable behavior.
//
// Get does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *FileStore) Get(ctx context.Context) (Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, ok := s.read()
	if !ok || blob.AccessToken == "" {
		return Credential{}, false
	}
	return Credential{AccessToken: blob.AccessToken, RefreshToken: blob.RefreshToken}, true
}

// Set describes the set operation and its observable behavior.
//
// Set may return an error when input validation, dependency calls, or security checks fail.
// Set does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *FileStore) Set(ctx context.Context, cred Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, _ := s.read()
	blob.AccessToken = cred.AccessToken
	blob.RefreshToken = cred.RefreshToken
	return s.write(blob)
}

// Clear describes the clear operation and its observable behavior.
//
// Clear may return an error when input validation, dependency calls, or security checks fail.
// Clear does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// GetIdentity describes the getidentity operation and its observable behavior.
//
// GetIdentity does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *FileStore) GetIdentity(ctx context.Context) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, ok := s.read()
	if !ok || len(blob.Identity) == 0 {
		return nil, false
	}
	return []byte(blob.Identity), true
}

// SetIdentity describes the setidentity operation and its observable behavior.
//
// SetIdentity may return an error when input validation, dependency calls, or security checks fail.
// SetIdentity does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *FileStore) SetIdentity(ctx context.Context, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, _ := s.read()
	blob.Identity = json.RawMessage(append([]byte(nil), raw...))
	return s.write(blob)
}
