package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	storage := NewLocalStorage(t.TempDir())
	assert.True(t, storage.IsConfigured())

	key := GenerateAttachmentKey("occ-123", "evidencia.png")
	content := "conteúdo do arquivo"

	result, err := storage.UploadReader(context.Background(), strings.NewReader(content), key, "image/png", int64(len(content)))
	assert.NoError(t, err)
	assert.Equal(t, key, result.Key)
	assert.Equal(t, int64(len(content)), result.FileSize)
	assert.Equal(t, "image/png", result.MimeType)

	reader, contentType, err := storage.Get(context.Background(), key)
	assert.NoError(t, err)
	defer reader.Close()
	assert.Equal(t, "image/png", contentType)

	data, err := io.ReadAll(reader)
	assert.NoError(t, err)
	assert.Equal(t, content, string(data))

	assert.NoError(t, storage.Delete(context.Background(), key))
	_, _, err = storage.Get(context.Background(), key)
	assert.Error(t, err)

	// Deleting a missing key is not an error
	assert.NoError(t, storage.Delete(context.Background(), key))
}

func TestGenerateAttachmentKey(t *testing.T) {
	key := GenerateAttachmentKey("occ-456", "foto do leito.jpg")
	assert.True(t, strings.HasPrefix(key, "occurrences/occ-456/attachments/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))

	// Keys are unique even for the same source file
	other := GenerateAttachmentKey("occ-456", "foto do leito.jpg")
	assert.NotEqual(t, key, other)
}
