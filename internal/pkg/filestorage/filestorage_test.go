package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadedFile(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/images", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["image"][0]
}

func TestStorageSaveAndDelete(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	urlPath, err := storage.Save(uploadedFile(t, "beach.jpg", "fake image bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(urlPath, "/uploads/"))
	assert.True(t, strings.HasSuffix(urlPath, ".jpg"))

	onDisk := filepath.Join(storage.BasePath(), filepath.Base(urlPath))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))

	storage.Delete(urlPath)
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))
}

func TestStorageSaveAssignsUniqueNames(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	first, err := storage.Save(uploadedFile(t, "photo.png", "a"))
	require.NoError(t, err)
	second, err := storage.Save(uploadedFile(t, "photo.png", "b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestStorageSaveRejectsUnsupportedType(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.Save(uploadedFile(t, "malware.exe", "MZ"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestStorageDeleteIgnoresMissingFile(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	storage.Delete("/uploads/never-existed.jpg")
}
