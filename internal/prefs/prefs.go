// Package prefs persists small client preferences, currently just the theme,
// each under its own file so the cart blob stays untouched.
package prefs

import (
	"encoding/json"
	"errors"
	"os"
)

// DefaultTheme is applied when no preference has been stored.
const DefaultTheme = "light"

type blob struct {
	Theme string `json:"theme"`
}

// Store reads and writes preferences at a fixed path.
type Store struct {
	path string
}

// NewStore builds a preference store at the given path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("prefs path is required")
	}
	return &Store{path: path}, nil
}

// Theme returns the stored theme. A missing or unreadable blob resolves to
// the default, never an error.
func (s *Store) Theme() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return DefaultTheme
	}
	var b blob
	if err := json.Unmarshal(data, &b); err != nil || b.Theme == "" {
		return DefaultTheme
	}
	return b.Theme
}

// SetTheme persists the theme preference.
func (s *Store) SetTheme(theme string) error {
	data, err := json.Marshal(blob{Theme: theme})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
