// Package storage is the image upload, fetch and delete shim.  Files live
// under a single public root directory and every path is confined to it.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxUploadBytes is the largest accepted upload.
const MaxUploadBytes = 2 << 20

// DefaultFolder is used when an upload names no folder.
const DefaultFolder = "general"

// UploadsDir is the only directory below the root that uploads are written
// to and deleted from.  Everything else under the root is read-only.
const UploadsDir = "uploads"

var (
	ErrOutsideRoot = errors.New("storage: path escapes the public root")
	ErrNotImage    = errors.New("storage: invalid file type")
	ErrTooLarge    = errors.New("storage: file too large (max 2MB)")
	ErrNotFound    = errors.New("storage: file not found")
)

// Store reads and writes below Root.
type Store struct {
	Root string
}

func New(root string) *Store { return &Store{Root: root} }

// Upload writes r to uploads/<folder>/<filename> and returns the public
// path of the file.  Only image/* content up to MaxUploadBytes is accepted.
// An empty filename gets a random name with the extension of the type.
func (s *Store) Upload(folder, filename, contentType string, size int64, r io.Reader) (string, error) {
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return "", ErrNotImage
	}
	if size > MaxUploadBytes {
		return "", ErrTooLarge
	}
	if folder = strings.Trim(folder, "/"); folder == "" {
		folder = DefaultFolder
	}
	if filename == "" {
		filename = uuid.NewString() + extensionFor(contentType)
	}
	if filename != filepath.Base(filename) || filename == "." || filename == ".." {
		return "", ErrOutsideRoot
	}

	rel := path.Join(UploadsDir, folder, filename)
	if !inUploads(rel) {
		return "", ErrOutsideRoot
	}
	abs, err := s.resolve(rel)
	if err != nil {
		return "", err
	}
	// read one byte past the limit to catch a lying size header
	body, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("storage: read upload: %w", err)
	}
	if len(body) > MaxUploadBytes {
		return "", ErrTooLarge
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("storage: %w", err)
	}
	if err := os.WriteFile(abs, body, 0o644); err != nil {
		return "", fmt.Errorf("storage: %w", err)
	}
	return "/" + rel, nil
}

// Open returns the file at rel with a content type derived from its
// extension.
func (s *Store) Open(rel string) (*os.File, string, error) {
	abs, err := s.resolve(rel)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("storage: %w", err)
	}
	if st, err := f.Stat(); err == nil && st.IsDir() {
		f.Close()
		return nil, "", ErrNotFound
	}
	return f, ContentType(rel), nil
}

// Delete removes the uploaded file at rel.  A missing file is not an
// error; a path outside the uploads directory is.
func (s *Store) Delete(rel string) error {
	if !inUploads(rel) {
		return ErrOutsideRoot
	}
	abs, err := s.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: %w", err)
	}
	return nil
}

// resolve maps a public path onto the filesystem.  A leading slash is
// allowed since the page addresses files as "/uploads/...".
func (s *Store) resolve(rel string) (string, error) {
	rel = filepath.FromSlash(strings.TrimLeft(rel, "/"))
	if rel == "" || !filepath.IsLocal(rel) {
		return "", ErrOutsideRoot
	}
	return filepath.Join(s.Root, rel), nil
}

func inUploads(rel string) bool {
	clean := path.Clean(strings.TrimLeft(rel, "/"))
	return strings.HasPrefix(clean, UploadsDir+"/")
}

// ContentType maps the handful of image extensions the site serves.
func ContentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	}
	return "application/octet-stream"
}

func extensionFor(contentType string) string {
	switch strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])) {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	}
	return ""
}
