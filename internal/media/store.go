// Package media stores uploaded attachments in a single flat directory.
// Stored names are generated per upload, so concurrent uploads never collide.
package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// allowedExtensions is the attachment allow-list.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".svg":  true,
}

// AllowedFile reports whether the filename carries an allowed extension.
func AllowedFile(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Store writes and serves attachment files under one directory.
type Store struct {
	Dir string
}

// NewStore creates the upload directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{Dir: dir}, nil
}

// Save persists the upload under a unique stored name and returns that name
// together with the full path. The caller is responsible for checking
// AllowedFile first.
func (s *Store) Save(filename string, src io.Reader) (storedName, path string, err error) {
	storedName = uniqueName(filename)
	path = filepath.Join(s.Dir, storedName)

	dst, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("create media file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", "", fmt.Errorf("write media file: %w", err)
	}
	return storedName, path, nil
}

// Resolve maps a stored filename to its on-disk path, rejecting anything
// that could escape the upload directory.
func (s *Store) Resolve(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) ||
		strings.Contains(filename, "..") {
		return "", fmt.Errorf("invalid media filename %q", filename)
	}
	return filepath.Join(s.Dir, filename), nil
}

// Remove unlinks a stored file. Used by the cascade delete, where failures
// are logged by the caller and never propagated.
func (s *Store) Remove(storedName string) error {
	path, err := s.Resolve(storedName)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// uniqueName builds a collision-resistant stored name from the upload time,
// a random component and a sanitized version of the original name.
func uniqueName(filename string) string {
	base := sanitize(filepath.Base(filename))
	stamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s_%s", stamp, uuid.New().String()[:8], base)
}

// sanitize keeps only characters that are safe in a flat filename.
func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
