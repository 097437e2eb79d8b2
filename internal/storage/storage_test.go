package storage

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadOpenDelete(t *testing.T) {
	s := New(t.TempDir())
	url, err := s.Upload("", "hero.png", "image/png", 4, strings.NewReader("\x89PNG"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/general/hero.png", url)

	f, ct, err := s.Open(url)
	require.NoError(t, err)
	body, _ := io.ReadAll(f)
	f.Close()
	assert.Equal(t, "image/png", ct)
	assert.Equal(t, "\x89PNG", string(body))

	require.NoError(t, s.Delete("uploads/general/hero.png"))
	_, _, err = s.Open(url)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, s.Delete("uploads/general/hero.png"))
}

func TestUpload_GeneratedName(t *testing.T) {
	s := New(t.TempDir())
	url, err := s.Upload("merchant/3", "", "image/webp", 1, strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/merchant/3/"))
	assert.True(t, strings.HasSuffix(url, ".webp"))
}

func TestUpload_Rejects(t *testing.T) {
	s := New(t.TempDir())
	_, err := s.Upload("", "a.txt", "text/plain", 1, strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = s.Upload("", "a.png", "image/png", MaxUploadBytes+1, strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrTooLarge)

	big := bytes.Repeat([]byte{1}, MaxUploadBytes+1)
	_, err = s.Upload("", "a.png", "image/png", 10, bytes.NewReader(big))
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = s.Upload("../..", "a.png", "image/png", 1, strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrOutsideRoot)
	_, err = s.Upload("", "../a.png", "image/png", 1, strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrOutsideRoot)
}

func TestPathsConfinedToRoot(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(filepath.Dir(root), "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))
	t.Cleanup(func() { os.Remove(outside) })

	s := New(root)
	_, _, err := s.Open("../secret.txt")
	assert.ErrorIs(t, err, ErrOutsideRoot)
	assert.ErrorIs(t, s.Delete("../secret.txt"), ErrOutsideRoot)
	_, err = os.Stat(outside)
	assert.NoError(t, err)
}

func TestWritesConfinedToUploads(t *testing.T) {
	root := t.TempDir()
	script := filepath.Join(root, "static", "site.js")
	require.NoError(t, os.MkdirAll(filepath.Dir(script), 0o755))
	require.NoError(t, os.WriteFile(script, []byte("// site"), 0o644))

	s := New(root)
	for _, folder := range []string{"../static", "a/../../static", "..", "hero/../../static"} {
		url, err := s.Upload(folder, "site.js", "image/png", 8, strings.NewReader("alert(1)"))
		assert.ErrorIs(t, err, ErrOutsideRoot, folder)
		assert.Empty(t, url)
	}
	assert.ErrorIs(t, s.Delete("/static/site.js"), ErrOutsideRoot)
	assert.ErrorIs(t, s.Delete("uploads/../static/site.js"), ErrOutsideRoot)

	got, err := os.ReadFile(script)
	require.NoError(t, err)
	assert.Equal(t, "// site", string(got))

	// a folder that stays inside uploads is still fine
	url, err := s.Upload("hero/../venue", "a.png", "image/png", 3, strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/venue/a.png", url)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", ContentType("a.JPEG"))
	assert.Equal(t, "image/gif", ContentType("x/y.gif"))
	assert.Equal(t, "application/octet-stream", ContentType("doc.pdf"))
}
