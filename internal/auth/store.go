package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

var (
	ErrNoToken      = errors.New("auth: no token stored")
	ErrInvalidToken = errors.New("auth: invalid token file")
)

// Token is what gets persisted between runs: the OAuth2 token and the scopes
// it was granted for.
type Token struct {
	oauth2.Token
	Scopes []string `json:"scopes,omitempty"`
}

// Covers reports whether t was granted every scope in scopes. Tokens persisted
// without scopes are assumed to cover them.
func (t Token) Covers(scopes []string) bool {
	if len(t.Scopes) == 0 {
		return true
	}
	granted := make(map[string]struct{}, len(t.Scopes))
	for _, s := range t.Scopes {
		granted[s] = struct{}{}
	}
	for _, s := range scopes {
		if _, ok := granted[s]; !ok {
			return false
		}
	}
	return true
}

type Store interface {
	Load() (*Token, error)
	Save(*Token) error
}

// FileStore keeps the token as JSON in a single file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s FileStore) Path() string {
	return s.path
}

// Load returns ErrNoToken when the file does not exist.
func (s FileStore) Load() (*Token, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, fmt.Errorf("auth: reading token file: %w", err)
	}

	var tok Token
	if err := json.Unmarshal(b, &tok); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrInvalidToken, s.path, err)
	}
	return &tok, nil
}

// Save overwrites the token file, creating its directory if needed.
func (s FileStore) Save(tok *Token) error {
	b, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("auth: creating token directory: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("auth: writing token file: %w", err)
	}
	return nil
}
