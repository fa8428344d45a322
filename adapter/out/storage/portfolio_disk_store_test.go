package storage

import (
	"bytes"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"portfolio_server/core/port/out"
)

// fileHeader builds a real multipart.FileHeader carrying content.
func fileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	if _, err := io.WriteString(part, content); err != nil {
		t.Fatalf("write part failed: %v", err)
	}
	writer.Close()

	reader := multipart.NewReader(&body, writer.Boundary())
	form, err := reader.ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("ReadForm failed: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["file"][0]
}

func TestDiskStoreSave(t *testing.T) {
	root := t.TempDir()
	store, err := NewDiskStore(root)
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return at }

	name, err := store.Save(out.CategoryUserImage, fileHeader(t, "avatar.png", "png-bytes"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.HasSuffix(name, "avatar.png") {
		t.Errorf("stored name should keep the original filename, got %q", name)
	}
	if !strings.HasPrefix(name, "1714554000000") {
		t.Errorf("stored name should be prefixed with the save instant, got %q", name)
	}

	data, err := os.ReadFile(filepath.Join(root, out.CategoryUserImage, name))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("stored content = %q, want png-bytes", data)
	}
}

func TestDiskStoreSaveStripsPath(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}

	name, err := store.Save(out.CategoryProjectImage, fileHeader(t, "../../escape.png", "x"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if strings.Contains(name, "/") || strings.Contains(name, "..") {
		t.Errorf("stored name must not carry path elements, got %q", name)
	}
}

func TestDiskStoreSaveDistinctInstants(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}
	instant := time.Now()
	store.now = func() time.Time {
		instant = instant.Add(time.Millisecond)
		return instant
	}

	first, err := store.Save(out.CategoryUserImage, fileHeader(t, "a.png", "1"))
	if err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	second, err := store.Save(out.CategoryUserImage, fileHeader(t, "a.png", "2"))
	if err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	if first == second {
		t.Error("saves at different instants must not collide")
	}
}

func TestDiskStoreRemove(t *testing.T) {
	root := t.TempDir()
	store, err := NewDiskStore(root)
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}

	name, err := store.Save(out.CategoryUserImage, fileHeader(t, "gone.png", "x"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Remove(out.CategoryUserImage, name); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, out.CategoryUserImage, name)); !os.IsNotExist(err) {
		t.Error("file should be gone after Remove")
	}

	// Removing again, or removing nothing, is not an error.
	if err := store.Remove(out.CategoryUserImage, name); err != nil {
		t.Errorf("removing a missing file should not error: %v", err)
	}
	if err := store.Remove(out.CategoryUserImage, ""); err != nil {
		t.Errorf("removing an empty name should not error: %v", err)
	}
}

func TestNewDiskStoreCreatesCategoryDirs(t *testing.T) {
	root := t.TempDir()
	if _, err := NewDiskStore(root); err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}
	for _, category := range []string{out.CategoryUserImage, out.CategoryProjectImage} {
		info, err := os.Stat(filepath.Join(root, category))
		if err != nil || !info.IsDir() {
			t.Errorf("category dir %q missing", category)
		}
	}
}
