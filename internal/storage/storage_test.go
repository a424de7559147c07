package storage

import (
	"testing"
	"time"

	"go-inventory-orders/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	id := uuid.MustParse("7f8d2c1e-0000-4000-8000-000000000001")
	now := time.UnixMilli(1700000000123)

	assert.Equal(t, "7f8d2c1e-0000-4000-8000-000000000001/1700000000123_front.jpg", ObjectKey(id, "front.jpg", now))
	assert.Equal(t, "7f8d2c1e-0000-4000-8000-000000000001/1700000000123_my_photo.png", ObjectKey(id, `C:\tmp\my photo.png`, now))
	assert.Equal(t, "7f8d2c1e-0000-4000-8000-000000000001/1700000000123_image", ObjectKey(id, "", now))
}

func TestKeyFromURL(t *testing.T) {
	key, ok := keyFromURL("https://cdn.example.com/images/", "https://cdn.example.com/images/abc/1_x.jpg")
	require.True(t, ok)
	assert.Equal(t, "abc/1_x.jpg", key)

	_, ok = keyFromURL("https://cdn.example.com/images", "https://elsewhere.com/abc/1_x.jpg")
	assert.False(t, ok)
}

func TestNewS3Store_DefaultPublicURL(t *testing.T) {
	s, err := NewS3Store(config.StorageConfig{
		Endpoint:  "localhost:9000",
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "products",
	})
	require.NoError(t, err)

	key, ok := s.KeyFromURL("http://localhost:9000/products/a/1_b.jpg")
	require.True(t, ok)
	assert.Equal(t, "a/1_b.jpg", key)
}
