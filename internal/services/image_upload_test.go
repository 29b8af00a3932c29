package services

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

// uploadHeader round-trips a multipart body so the header can be opened.
func uploadHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req, err := http.NewRequest("POST", "/", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func TestMediaStorage_SaveAndDelete(t *testing.T) {
	m := NewMediaStorage(t.TempDir())

	rel, err := m.SaveImage(uploadHeader(t, "small.gif", smallGIF))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "posts/"))
	assert.True(t, strings.HasSuffix(rel, ".gif"))
	assert.Equal(t, "/media/"+rel, m.URL(rel))

	data, err := os.ReadFile(filepath.Join(m.Root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, smallGIF, data)

	require.NoError(t, m.Delete(rel))
	_, err = os.Stat(filepath.Join(m.Root, filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, m.Delete(rel))
}

func TestMediaStorage_RejectsEscape(t *testing.T) {
	m := NewMediaStorage(t.TempDir())
	assert.Error(t, m.Delete("../etc/passwd"))
	assert.Equal(t, "", m.URL(""))
}
