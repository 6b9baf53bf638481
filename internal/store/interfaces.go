package store

import (
	"context"

	"github.com/MKhiriev/go-doc-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// BlobStore is a content-addressed store for ciphertext blobs.
type BlobStore interface {
	// Store persists data and returns its locator.
	Store(ctx context.Context, data []byte) (string, error)

	// Fetch returns the bytes stored under locator, or [ErrBlobNotFound].
	Fetch(ctx context.Context, locator string) ([]byte, error)
}

// Registry is the append-only index of registered documents keyed by
// plaintext content hash.
type Registry interface {
	Exists(ctx context.Context, contentHash string) (bool, error)

	// Record inserts record if its content hash is not registered yet.
	// The check and the insert are atomic; a conflicting insert returns
	// [ErrAlreadyRegistered].
	Record(ctx context.Context, record models.DocumentRecord) error

	// Lookup returns the record for contentHash, or [ErrDocumentNotFound].
	Lookup(ctx context.Context, contentHash string) (models.DocumentRecord, error)

	// List returns matching records, newest first.
	List(ctx context.Context, filter models.DocumentFilter) ([]models.DocumentRecord, error)
}

// PendingRegistrationStore keeps records whose ciphertext is stored but whose
// registry entry could not be written yet.
type PendingRegistrationStore interface {
	Add(ctx context.Context, record models.DocumentRecord) error
	Get(ctx context.Context, contentHash string) (models.DocumentRecord, error)
	Remove(ctx context.Context, contentHash string) error
	List(ctx context.Context) ([]models.DocumentRecord, error)
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
