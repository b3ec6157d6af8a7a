// Package session persists the CLI's auth state between invocations.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/filevault/internal/client/api"
)

// Session is the cached auth state: the bearer token and the user it
// belongs to.
type Session struct {
	Token string   `json:"token"`
	User  api.User `json:"user"`
}

// Load reads the session file. A missing file is not an error; it returns
// an empty session.
func Load(path string) (*Session, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Session{}, nil
		}
		return nil, err
	}

	s := &Session{}
	if err := json.Unmarshal(raw, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes the session file with owner-only permissions; it holds a
// credential.
func Save(path string, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

// Clear removes the session file. A file that is already gone is fine.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Active reports whether the session carries a token.
func (s *Session) Active() bool {
	return s != nil && s.Token != ""
}
