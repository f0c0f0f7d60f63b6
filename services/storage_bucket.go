package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/google/uuid"
)

const uploadsPrefix = "posts/"

var ErrUnsupportedImage = errors.New("unsupported image type")

var imageExtensions = map[string]string{
	"image/gif":  ".gif",
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// AttachmentStore keeps post images. Posts only reference them by blob name.
type AttachmentStore interface {
	Upload(ctx context.Context, contentType string, content io.Reader) (blobName string, err error)
	URL(blobName string) string
}

type StorageBucket struct {
	*storage.BucketHandle
	name string
}

var _ AttachmentStore = (*StorageBucket)(nil)

func NewStorageBucket(ctx context.Context, app *firebase.App, bucketName string) (*StorageBucket, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, err
	}
	bucketHandle, err := client.Bucket(bucketName)
	if err != nil {
		return nil, err
	}

	return &StorageBucket{
		BucketHandle: bucketHandle,
		name:         bucketName,
	}, nil
}

// ImageBlobName names a new upload. Only image content types are accepted.
func ImageBlobName(contentType string) (string, error) {
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedImage, contentType)
	}
	return uploadsPrefix + uuid.NewString() + ext, nil
}

func (sb *StorageBucket) Upload(ctx context.Context, contentType string, content io.Reader) (string, error) {
	blobName, err := ImageBlobName(contentType)
	if err != nil {
		return "", err
	}
	writer := sb.Object(blobName).NewWriter(ctx)
	writer.ContentType = contentType
	if _, err := io.Copy(writer, content); err != nil {
		_ = writer.Close()
		return "", fmt.Errorf("upload %v: %w", blobName, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("upload %v: %w", blobName, err)
	}
	return blobName, nil
}

func (sb *StorageBucket) URL(blobName string) string {
	if blobName == "" {
		return ""
	}
	return fmt.Sprintf("https://storage.googleapis.com/%v/%v", sb.name, (&url.URL{Path: blobName}).EscapedPath())
}
