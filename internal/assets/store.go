// Package assets serves the externally produced images and map document
// from the configured asset directory.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/chrissnell/citibike-dashboard/internal/types"
)

// Store reads assets from a filesystem rooted at the asset directory.
type Store struct {
	fsys fs.FS
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = "."
	}
	return &Store{fsys: os.DirFS(dir)}
}

// NewStoreFS returns a store over an arbitrary filesystem.
func NewStoreFS(fsys fs.FS) *Store {
	return &Store{fsys: fsys}
}

// Image returns the bytes of the named image and its content type.
func (s *Store) Image(name string) ([]byte, string, error) {
	data, err := s.read(name)
	if err != nil {
		return nil, "", err
	}
	return data, contentType(name, data), nil
}

// Document returns the named text document, such as the trip map HTML.
func (s *Store) Document(name string) (string, error) {
	data, err := s.read(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Exists reports whether the named asset can be read.
func (s *Store) Exists(name string) bool {
	if !validName(name) {
		return false
	}
	info, err := fs.Stat(s.fsys, name)
	return err == nil && !info.IsDir()
}

func (s *Store) read(name string) ([]byte, error) {
	if !validName(name) {
		return nil, fmt.Errorf("invalid asset name %q: %w", name, types.ErrAssetNotFound)
	}
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrInvalid) {
			return nil, fmt.Errorf("%s: %w", name, types.ErrAssetNotFound)
		}
		return nil, fmt.Errorf("%s: %v: %w", name, err, types.ErrAssetNotFound)
	}
	return data, nil
}

func validName(name string) bool {
	return name != "" && fs.ValidPath(name) && name != "."
}

func contentType(name string, data []byte) string {
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(name))); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}
