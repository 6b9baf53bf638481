package service

import (
	"context"

	"github.com/MKhiriev/go-doc-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// VaultService is the encrypted document vault pipeline.
type VaultService interface {
	// Upload hashes, deduplicates, encrypts, stores and registers a document.
	Upload(ctx context.Context, req models.UploadRequest) (models.UploadResult, error)

	// Retrieve fetches and decrypts a ciphertext. When req.ExpectedHash is set
	// the plaintext is re-hashed and compared.
	Retrieve(ctx context.Context, req models.RetrieveRequest) (models.RetrieveResult, error)

	// RetrieveDocument retrieves a registered document by its content hash,
	// always verifying integrity.
	RetrieveDocument(ctx context.Context, contentHash, password string) (models.RetrieveResult, error)

	Verify(ctx context.Context, contentHash string) (bool, error)
	Lookup(ctx context.Context, contentHash string) (models.DocumentRecord, error)
	List(ctx context.Context, filter models.DocumentFilter) ([]models.DocumentRecord, error)

	// Fingerprint returns the content hash of a document without storing it.
	Fingerprint(content []byte) string

	// CompleteRegistration writes the registry entry of a partially uploaded
	// document kept in the pending-registration outbox.
	CompleteRegistration(ctx context.Context, contentHash string) (models.DocumentRecord, error)
	PendingRegistrations(ctx context.Context) ([]models.DocumentRecord, error)
}

// AppInfoService exposes application metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// VaultServiceWrapper defines middleware composition for VaultService.
// Implementations wrap an existing VaultService to add behavior such as
// logging or validating.
type VaultServiceWrapper interface {
	Wrap(VaultService) VaultService // returns a decorated VaultService applying additional behavior
}
