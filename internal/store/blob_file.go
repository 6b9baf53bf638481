package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// fileBlobStore is a content-addressed [BlobStore] on the local filesystem.
// The locator of a blob is the hex SHA-256 of its bytes. Files live at
// {dir}/{locator[:2]}/{locator}; the first byte shards the directory.
type fileBlobStore struct {
	dir string
	mu  sync.RWMutex
}

// NewFileBlobStore creates the base directory if needed and returns a file
// backed [BlobStore].
func NewFileBlobStore(dir string) (BlobStore, error) {
	if dir == "" {
		return nil, ErrInvalidBlobDir
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBlobStoreUnavailable, err)
	}

	return &fileBlobStore{dir: dir}, nil
}

func (f *fileBlobStore) Store(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	sum := sha256.Sum256(data)
	locator := hex.EncodeToString(sum[:])

	f.mu.Lock()
	defer f.mu.Unlock()

	path := f.path(locator)
	if _, err := os.Stat(path); err == nil {
		// identical bytes are already stored
		return locator, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("%w: %w", ErrBlobStoreUnavailable, err)
	}

	// write to a temp file first so a crash never leaves a truncated blob
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return "", fmt.Errorf("%w: %w", ErrBlobStoreUnavailable, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("%w: %w", ErrBlobStoreUnavailable, err)
	}

	return locator, nil
}

func (f *fileBlobStore) Fetch(ctx context.Context, locator string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !isBlobLocator(locator) {
		return nil, ErrBlobNotFound
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := os.ReadFile(f.path(locator))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrBlobStoreUnavailable, err)
	}

	return data, nil
}

func (f *fileBlobStore) path(locator string) string {
	return filepath.Join(f.dir, locator[:2], locator)
}

// isBlobLocator rejects anything that is not a 64 char hex digest, which
// also keeps path traversal out of Fetch.
func isBlobLocator(locator string) bool {
	if len(locator) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(locator)
	return err == nil
}
