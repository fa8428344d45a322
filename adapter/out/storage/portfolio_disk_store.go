// Package storage implements the filesystem blob store behind the upload
// intake.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"
)

// DiskStore stores uploaded blobs under root/<category>/<name>. Stored names
// are unix-millis plus the original filename, which keeps them stable and
// collision-free enough for single-process intake.
type DiskStore struct {
	root string
	now  func() time.Time
}

// NewDiskStore creates a disk store rooted at dir, creating the category
// directories up front.
func NewDiskStore(root string) (*DiskStore, error) {
	for _, category := range []string{"userImage", "projectImage"} {
		if err := os.MkdirAll(filepath.Join(root, category), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}
	return &DiskStore{root: root, now: time.Now}, nil
}

// Root returns the upload root, used for static serving.
func (s *DiskStore) Root() string {
	return s.root
}

// Save writes the uploaded file and returns its stored name.
func (s *DiskStore) Save(category string, file *multipart.FileHeader) (string, error) {
	name := fmt.Sprintf("%d%s", s.now().UnixMilli(), filepath.Base(file.Filename))

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.root, category, name))
	if err != nil {
		return "", fmt.Errorf("create blob: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write blob: %w", err)
	}
	return name, nil
}

// Remove deletes a stored blob by name. A missing blob is not an error.
func (s *DiskStore) Remove(category, name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, category, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}
