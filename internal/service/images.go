package service

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ImageStore keeps appeal images on the local filesystem.
type ImageStore struct {
	dir string
}

// NewImageStore returns an ImageStore rooted at dir.
func NewImageStore(dir string) *ImageStore {
	return &ImageStore{dir: dir}
}

// Save copies body into the store under a unique name and returns its path.
func (s *ImageStore) Save(name string, body io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to store image file: %w", err)
	}

	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." {
		base = "image"
	}
	target := filepath.Join(s.dir, uuid.NewString()+"_"+base)

	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to store image file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(target)
		return "", fmt.Errorf("failed to store image file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to store image file: %w", err)
	}
	return target, nil
}

// Load returns the stored image at path as standard base64.
func (s *ImageStore) Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image %s: %w", path, err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
