package store

import (
	"bytes"
	"context"
	"sync"
)

// IDGenerator produces unique locators for the in-memory blob store.
type IDGenerator interface {
	Generate() string
}

// memoryBlobStore keeps blobs in a map. Locators come from an [IDGenerator]
// (UUIDv7 in production).
type memoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
	ids   IDGenerator
}

// NewMemoryBlobStore returns an empty in-memory [BlobStore].
func NewMemoryBlobStore(ids IDGenerator) BlobStore {
	return &memoryBlobStore{
		blobs: make(map[string][]byte),
		ids:   ids,
	}
}

func (m *memoryBlobStore) Store(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	locator := m.ids.Generate()

	m.mu.Lock()
	m.blobs[locator] = bytes.Clone(data)
	m.mu.Unlock()

	return locator, nil
}

func (m *memoryBlobStore) Fetch(ctx context.Context, locator string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[locator]
	if !ok {
		return nil, ErrBlobNotFound
	}
	return bytes.Clone(data), nil
}
