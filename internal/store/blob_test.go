package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MKhiriev/go-doc-vault/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBlobStore_StoreFetch(t *testing.T) {
	s := NewMemoryBlobStore(utils.NewUUIDGenerator())
	ctx := context.Background()

	data := []byte("ciphertext")
	loc1, err := s.Store(ctx, data)
	require.NoError(t, err)
	loc2, err := s.Store(ctx, data)
	require.NoError(t, err)
	assert.NotEqual(t, loc1, loc2)

	// the store keeps its own copy
	data[0] = 'X'

	got, err := s.Fetch(ctx, loc1)
	require.NoError(t, err)
	assert.Equal(t, []byte("ciphertext"), got)

	_, err = s.Fetch(ctx, "missing")
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestFileBlobStore_ContentAddressed(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileBlobStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	data := []byte("some ciphertext bytes")
	sum := sha256.Sum256(data)
	want := hex.EncodeToString(sum[:])

	loc, err := s.Store(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, want, loc)

	// sharded by the first byte
	info, err := os.Stat(filepath.Join(dir, want[:2], want))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	again, err := s.Store(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, loc, again)

	got, err := s.Fetch(ctx, loc)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestFileBlobStore_FetchMissing(t *testing.T) {
	s, err := NewFileBlobStore(t.TempDir())
	require.NoError(t, err)

	tests := []string{
		strings.Repeat("a", 64),
		"../../etc/passwd",
		"short",
		strings.Repeat("z", 64),
	}
	for _, loc := range tests {
		_, err := s.Fetch(context.Background(), loc)
		assert.ErrorIs(t, err, ErrBlobNotFound, loc)
	}
}

func TestNewFileBlobStore_EmptyDir(t *testing.T) {
	_, err := NewFileBlobStore("")
	assert.ErrorIs(t, err, ErrInvalidBlobDir)
}
