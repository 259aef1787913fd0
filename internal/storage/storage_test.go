package storage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// uploadRequest builds a multipart request carrying one file under the
// given field name.
func uploadRequest(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func formFile(t *testing.T, req *http.Request, field string) *multipart.FileHeader {
	t.Helper()
	_, fh, err := req.FormFile(field)
	if err != nil {
		t.Fatal(err)
	}
	return fh
}

func TestSaveUpload(t *testing.T) {
	store := New(t.TempDir())
	req := uploadRequest(t, "foto", "buraco.JPG", "fake image bytes")

	path, err := store.SaveUpload(formFile(t, req, "foto"), DirRelatos)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasSuffix(path, ".jpg") {
		t.Errorf("extension not normalized: %q", path)
	}
	if !strings.Contains(path, DirRelatos) {
		t.Errorf("path %q not under %q", path, DirRelatos)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "fake image bytes" {
		t.Error("stored content differs from upload")
	}
}

func TestSaveUploadUniqueNames(t *testing.T) {
	store := New(t.TempDir())

	paths := map[string]bool{}
	for i := 0; i < 3; i++ {
		req := uploadRequest(t, "foto", "mesma.png", "x")
		path, err := store.SaveUpload(formFile(t, req, "foto"), DirRelatos)
		if err != nil {
			t.Fatal(err)
		}
		if paths[path] {
			t.Fatalf("duplicate stored path %q", path)
		}
		paths[path] = true
	}
}

func TestSaveUploadRejectsExtension(t *testing.T) {
	store := New(t.TempDir())
	req := uploadRequest(t, "foto", "malware.exe", "nope")

	if _, err := store.SaveUpload(formFile(t, req, "foto"), DirRelatos); err == nil {
		t.Fatal("expected rejection of .exe upload")
	}
}

func TestSaveUploadRejectsOversize(t *testing.T) {
	store := New(t.TempDir())
	req := uploadRequest(t, "foto", "grande.jpg", strings.Repeat("a", MaxFileSize+1))

	if _, err := store.SaveUpload(formFile(t, req, "foto"), DirRelatos); err == nil {
		t.Fatal("expected rejection of oversize upload")
	}
}

func TestRemove(t *testing.T) {
	store := New(t.TempDir())
	req := uploadRequest(t, "foto", "buraco.jpg", "x")

	path, err := store.SaveUpload(formFile(t, req, "foto"), DirRelatos)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Remove(path); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file still present after remove: %v", err)
	}
	// An empty path is a no-op, not an error.
	if err := store.Remove(""); err != nil {
		t.Errorf("remove of empty path: %v", err)
	}
}

func TestSaveUploadCreatesSubdir(t *testing.T) {
	root := t.TempDir()
	store := New(root)
	req := uploadRequest(t, "doc", "escritura.pdf", "pdf bytes")

	if _, err := store.SaveUpload(formFile(t, req, "doc"), DirTitularidade); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(root, DirTitularidade)); err != nil {
		t.Errorf("subdir not created: %v", err)
	}
}
