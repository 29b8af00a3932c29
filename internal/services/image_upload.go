package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// postsDir is the subdirectory of the media root holding post images.
const postsDir = "posts"

var allowedExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// MediaStorage keeps uploaded files on local disk under Root.
type MediaStorage struct {
	Root string
}

func NewMediaStorage(root string) *MediaStorage {
	return &MediaStorage{Root: root}
}

// SaveImage writes an uploaded post image and returns its path relative to Root.
func (m *MediaStorage) SaveImage(header *multipart.FileHeader) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExt[ext] {
		ext = ".img"
	}
	rel := postsDir + "/" + uuid.NewString() + ext

	dir := filepath.Join(m.Root, postsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	dst, err := os.Create(filepath.Join(m.Root, filepath.FromSlash(rel)))
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	return rel, nil
}

// Delete removes a stored file. Missing files are ignored.
func (m *MediaStorage) Delete(rel string) error {
	if rel == "" {
		return nil
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("invalid media path %q", rel)
	}
	err := os.Remove(filepath.Join(m.Root, clean))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete media file: %w", err)
	}
	return nil
}

// URL maps a stored path to its public URL.
func (m *MediaStorage) URL(rel string) string {
	if rel == "" {
		return ""
	}
	return "/media/" + rel
}
