package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func uploadFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	assert.NoError(t, err)
	part.Write(content)
	writer.Close()

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	_, header, err := req.FormFile("image")
	assert.NoError(t, err)
	return header
}

func TestSaveMoviePoster(t *testing.T) {
	store := NewImageStore(t.TempDir())

	header := uploadFileHeader(t, "poster.jpg", []byte("fake image bytes"))

	path, err := store.SaveMoviePoster(3, header)

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "movies/3_"))
	assert.True(t, strings.HasSuffix(path, ".jpg"))
}

func TestSaveMoviePoster_WritesFile(t *testing.T) {
	baseDir := t.TempDir()
	store := NewImageStore(baseDir)

	header := uploadFileHeader(t, "poster.png", []byte("fake image bytes"))

	path, err := store.SaveMoviePoster(7, header)
	assert.NoError(t, err)

	written, err := os.ReadFile(filepath.Join(baseDir, path))
	assert.NoError(t, err)
	assert.Equal(t, []byte("fake image bytes"), written)
}

func TestSaveMoviePoster_UnsupportedType(t *testing.T) {
	store := NewImageStore(t.TempDir())

	header := uploadFileHeader(t, "poster.gif", []byte("gif bytes"))

	path, err := store.SaveMoviePoster(3, header)

	assert.Equal(t, ErrUnsupportedImageType, err)
	assert.Empty(t, path)
}

func TestSaveMoviePoster_CaseInsensitiveExt(t *testing.T) {
	store := NewImageStore(t.TempDir())

	header := uploadFileHeader(t, "POSTER.JPG", []byte("fake image bytes"))

	path, err := store.SaveMoviePoster(3, header)

	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".jpg"))
}
