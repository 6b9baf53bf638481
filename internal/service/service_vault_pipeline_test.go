// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/MKhiriev/go-doc-vault/internal/crypto"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/store"
	"github.com/MKhiriev/go-doc-vault/internal/utils"
	"github.com/MKhiriev/go-doc-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingBlobStore counts Store calls of the wrapped store.
type countingBlobStore struct {
	store.BlobStore
	stores atomic.Int32
}

func (c *countingBlobStore) Store(ctx context.Context, data []byte) (string, error) {
	c.stores.Add(1)
	return c.BlobStore.Store(ctx, data)
}

func newPipeline(t *testing.T, keys crypto.KeyDeriver, cipher crypto.Cipher) (VaultService, *countingBlobStore) {
	t.Helper()
	blobs := &countingBlobStore{BlobStore: store.NewMemoryBlobStore(utils.NewUUIDGenerator())}
	storages := &store.Storages{
		BlobStore:            blobs,
		Registry:             store.NewMemoryRegistry(),
		PendingRegistrations: store.NewMemoryPendingRegistrationStore(),
	}

	inner := NewVaultService(keys, cipher, crypto.NewSHA256Hasher(), storages, logger.Nop())
	return NewVaultValidationService().Wrap(inner), blobs
}

func TestPipeline_HelloWorldScenario(t *testing.T) {
	svc, blobs := newPipeline(t, crypto.NewZeroPadKeyDeriver(), crypto.NewCBCCipher())
	ctx := context.Background()

	req := models.UploadRequest{
		Content:  []byte("hello world"),
		Password: "Secr3t!",
		Filename: "hello.txt",
		MimeType: "text/plain",
		Category: "notes",
	}

	res, err := svc.Upload(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9", res.ContentHash)
	assert.True(t, res.Registered)
	assert.Len(t, res.IV, 32)

	registered, err := svc.Verify(ctx, res.ContentHash)
	require.NoError(t, err)
	assert.True(t, registered)

	got, err := svc.Retrieve(ctx, models.RetrieveRequest{
		Locator:      res.Locator,
		IV:           res.IV,
		Password:     "Secr3t!",
		ExpectedHash: res.ContentHash,
		Filename:     res.Filename,
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), got.Content)
	assert.Equal(t, "hello.txt", got.Filename)

	_, err = svc.Retrieve(ctx, models.RetrieveRequest{
		Locator:      res.Locator,
		IV:           res.IV,
		Password:     "wrong",
		ExpectedHash: res.ContentHash,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecryption) || errors.Is(err, ErrIntegrityMismatch),
		"wrong password must fail with decryption or integrity error, got %v", err)

	_, err = svc.Upload(ctx, req)
	assert.ErrorIs(t, err, ErrDuplicateDocument)
	assert.Equal(t, int32(1), blobs.stores.Load(), "duplicate upload must not store a second blob")

	byHash, err := svc.RetrieveDocument(ctx, res.ContentHash, "Secr3t!")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), byHash.Content)
	assert.Equal(t, "text/plain", byHash.MimeType)

	records, err := svc.List(ctx, models.DocumentFilter{Category: "NOTES", Query: "hello"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "zeropad", records[0].KeyScheme)
	assert.Equal(t, "aes-256-cbc", records[0].CipherScheme)
}

func TestPipeline_HardenedSchemes(t *testing.T) {
	svc, _ := newPipeline(t, crypto.NewArgon2KeyDeriver([]byte("deployment-salt")), crypto.NewGCMCipher())
	ctx := context.Background()

	res, err := svc.Upload(ctx, models.UploadRequest{
		Content:  []byte("quarterly report"),
		Password: "correct horse battery staple",
		Filename: "report.txt",
		Category: "finance",
	})
	require.NoError(t, err)

	got, err := svc.RetrieveDocument(ctx, res.ContentHash, "correct horse battery staple")
	require.NoError(t, err)
	assert.Equal(t, []byte("quarterly report"), got.Content)

	_, err = svc.RetrieveDocument(ctx, res.ContentHash, "wrong horse")
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestPipeline_EmptyDocument(t *testing.T) {
	ciphers := map[string]crypto.Cipher{
		crypto.SchemeAESCBC: crypto.NewCBCCipher(),
		crypto.SchemeAESGCM: crypto.NewGCMCipher(),
	}

	for name, cipher := range ciphers {
		t.Run(name, func(t *testing.T) {
			svc, _ := newPipeline(t, crypto.NewZeroPadKeyDeriver(), cipher)
			ctx := context.Background()

			res, err := svc.Upload(ctx, models.UploadRequest{
				Password: "pw",
				Filename: "empty.bin",
				Category: "misc",
			})
			require.NoError(t, err)
			assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", res.ContentHash)

			got, err := svc.RetrieveDocument(ctx, res.ContentHash, "pw")
			require.NoError(t, err)
			assert.Equal(t, []byte{}, got.Content)
		})
	}
}

func TestPipeline_ValidationRejectsBeforePipeline(t *testing.T) {
	svc, blobs := newPipeline(t, crypto.NewZeroPadKeyDeriver(), crypto.NewCBCCipher())
	ctx := context.Background()

	_, err := svc.Upload(ctx, models.UploadRequest{Content: []byte("x"), Filename: "x.txt", Category: "c"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, int32(0), blobs.stores.Load())

	_, err = svc.Lookup(ctx, "not-a-hash")
	assert.ErrorIs(t, err, ErrValidation)
}
