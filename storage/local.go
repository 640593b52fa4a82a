package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

type localImageSource struct {
	root fs.FS
}

func NewLocalImageSource(dir string) ImageSource {
	return &localImageSource{root: os.DirFS(dir)}
}

// NewFSImageSource нужен тестам и встроенным ресурсам.
func NewFSImageSource(fsys fs.FS) ImageSource {
	return &localImageSource{root: fsys}
}

func (s *localImageSource) List(ctx context.Context, prefix string) ([]string, error) {
	dir := strings.TrimSuffix(prefix, "/")
	if dir == "" {
		dir = "."
	}
	entries, err := fs.ReadDir(s.root, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		keys = append(keys, path.Join(dir, e.Name()))
	}
	return keys, nil
}

func (s *localImageSource) Get(_ context.Context, key string) ([]byte, string, error) {
	data, err := fs.ReadFile(s.root, filepath.ToSlash(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %s", ErrImageNotFound, key)
		}
		return nil, "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, "", nil
}
