package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStorage keeps the cart as a JSON file, the CLI equivalent of browser
// local storage.
type FileStorage struct {
	path string
}

// NewFileStorage builds a file-backed storage at the given path.
func NewFileStorage(path string) (*FileStorage, error) {
	if path == "" {
		return nil, errors.New("cart file path is required")
	}
	return &FileStorage{path: path}, nil
}

func (s *FileStorage) Load(ctx context.Context) ([]Item, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cart file: %w", err)
	}
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding cart file: %w", err)
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

func (s *FileStorage) Save(ctx context.Context, items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating cart directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing cart file: %w", err)
	}
	return nil
}
