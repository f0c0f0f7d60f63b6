package services

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"sync"
)

const MediaPrefix = "/media/"

type memoryBlob struct {
	contentType string
	content     []byte
}

// MemoryAttachmentStore keeps uploads in process. It backs STORE=memory when
// no uploads bucket is configured, and serves them under MediaPrefix.
type MemoryAttachmentStore struct {
	lock  sync.RWMutex
	blobs map[string]*memoryBlob
}

var _ AttachmentStore = (*MemoryAttachmentStore)(nil)

func NewMemoryAttachmentStore() *MemoryAttachmentStore {
	return &MemoryAttachmentStore{blobs: make(map[string]*memoryBlob)}
}

func (ms *MemoryAttachmentStore) Upload(ctx context.Context, contentType string, content io.Reader) (string, error) {
	blobName, err := ImageBlobName(contentType)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, content); err != nil {
		return "", err
	}
	ms.lock.Lock()
	defer ms.lock.Unlock()
	ms.blobs[blobName] = &memoryBlob{contentType: contentType, content: buf.Bytes()}
	return blobName, nil
}

func (ms *MemoryAttachmentStore) URL(blobName string) string {
	if blobName == "" {
		return ""
	}
	return MediaPrefix + (&url.URL{Path: blobName}).EscapedPath()
}

// Get returns the stored blob, ok is false if there is none
func (ms *MemoryAttachmentStore) Get(blobName string) (contentType string, content []byte, ok bool) {
	ms.lock.RLock()
	defer ms.lock.RUnlock()
	blob, ok := ms.blobs[blobName]
	if !ok {
		return "", nil, false
	}
	return blob.contentType, blob.content, true
}
