package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local stores blobs under a root directory on the local filesystem.
// Keys map to paths relative to the root; the public URL is the
// configured base URL plus the key.
type Local struct {
	root    string
	baseURL string
}

// Compile-time check that Local implements Provider.
var _ Provider = (*Local)(nil)

// NewLocal creates a Local provider rooted at root.
func NewLocal(root, baseURL string) *Local {
	// Ensure the root directory exists
	_ = os.MkdirAll(root, 0755)
	return &Local{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (l *Local) Put(_ context.Context, key string, body io.Reader, _ string) error {
	path := filepath.Join(l.root, filepath.FromSlash(key))

	// Ensure sub-directories exist (e.g. thumbnails/user/2026/03)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, body)
	return err
}

func (l *Local) Delete(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(l.root, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (l *Local) Exists(_ context.Context, key string) (bool, error) {
	_, err := os.Stat(filepath.Join(l.root, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (l *Local) PublicURL(key string) string {
	return l.baseURL + "/" + key
}
