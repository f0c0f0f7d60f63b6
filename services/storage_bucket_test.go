package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageBlobName(t *testing.T) {
	name, err := ImageBlobName("image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "posts/"))
	assert.True(t, strings.HasSuffix(name, ".png"))

	other, err := ImageBlobName("image/png")
	require.NoError(t, err)
	assert.NotEqual(t, name, other)
}

func TestImageBlobNameRejectsNonImages(t *testing.T) {
	_, err := ImageBlobName("application/pdf")
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestStorageBucketURL(t *testing.T) {
	sb := &StorageBucket{name: "uploads"}
	assert.Equal(t, "https://storage.googleapis.com/uploads/posts/a.png", sb.URL("posts/a.png"))
	assert.Equal(t, "", sb.URL(""))
}
