package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".jpg", extensionFor("image/jpeg"))
	assert.Equal(t, ".jpg", extensionFor("image/jpg"))
	assert.Equal(t, ".png", extensionFor("image/png"))
	assert.Equal(t, ".webp", extensionFor("image/webp"))
	assert.Equal(t, ".bin", extensionFor("application/octet-stream"))
}

func TestObjectNameFromURL(t *testing.T) {
	c := &CloudStorageClient{bucketName: "immomarket-media"}

	name, ok := c.objectNameFromURL("https://storage.googleapis.com/immomarket-media/properties/1700000000000_42.jpg")
	assert.True(t, ok)
	assert.Equal(t, "properties/1700000000000_42.jpg", name)

	_, ok = c.objectNameFromURL("https://storage.googleapis.com/other-bucket/properties/x.jpg")
	assert.False(t, ok, "foreign bucket")

	_, ok = c.objectNameFromURL("https://example.com/properties/x.jpg")
	assert.False(t, ok, "foreign host")
}
