// Package storage persists uploaded photos and documents on disk and hands
// back opaque paths for the database rows to reference.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const MaxFileSize = 5 * 1024 * 1024

// Upload destinations, one per kind of document.
const (
	DirRelatos      = "relatos_cidadao"
	DirComprovantes = "comprovantes_relatos"
	DirTitularidade = "comprovantes_titularidade"
	DirResolucoes   = "resolucoes_prefeitura"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

type Store struct {
	root string
}

func New(root string) *Store { return &Store{root: root} }

// SaveUpload writes one multipart file under root/subdir with a random
// name, keeping the original extension. Returns the stored path.
func (s *Store) SaveUpload(fh *multipart.FileHeader, subdir string) (string, error) {
	if fh.Size > MaxFileSize {
		return "", fmt.Errorf("arquivo %s excede o tamanho máximo de 5MB", fh.Filename)
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("arquivo %s tem formato não permitido (use JPG, PNG ou PDF)", fh.Filename)
	}

	dir := filepath.Join(s.root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	path := filepath.Join(dir, uuid.NewString()+ext)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return path, nil
}

// Remove deletes a stored upload whose owning record was never created.
func (s *Store) Remove(path string) error {
	if path == "" {
		return nil
	}
	return os.Remove(path)
}
