// internal/storage/local.go
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Local writes images below a directory served at baseURL.
type Local struct {
	root    string
	baseURL string
}

func NewLocal(root, baseURL string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Local{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (l *Local) Name() string { return "local" }

func (l *Local) Put(ctx context.Context, dataURI, folder string) (*Object, error) {
	img, err := DecodeDataURI(dataURI)
	if err != nil {
		return nil, err
	}

	key := generateKey(folder, img.Ext)
	target, err := l.path(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	if err := os.WriteFile(target, img.Bytes, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write image: %w", err)
	}

	return &Object{URL: l.baseURL + "/" + key, Key: key}, nil
}

func (l *Local) Delete(ctx context.Context, key string) error {
	target, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

func (l *Local) Ping(ctx context.Context) error {
	info, err := os.Stat(l.root)
	if err != nil {
		return fmt.Errorf("upload dir unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("upload dir %s is not a directory", l.root)
	}
	return nil
}

// path keeps keys inside the upload root.
func (l *Local) path(key string) (string, error) {
	target := filepath.Join(l.root, filepath.FromSlash(key))
	rel, err := filepath.Rel(l.root, target)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid image key %q", key)
	}
	return target, nil
}
