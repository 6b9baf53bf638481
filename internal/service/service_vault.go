package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-doc-vault/internal/crypto"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/store"
	"github.com/MKhiriev/go-doc-vault/models"
)

type vaultService struct {
	keys   crypto.KeyDeriver
	cipher crypto.Cipher
	hasher crypto.ContentHasher

	blobs    store.BlobStore
	registry store.Registry
	pending  store.PendingRegistrationStore

	now func() time.Time

	logger *logger.Logger
}

// NewVaultService assembles the pipeline from its crypto primitives and the
// storage collaborators.
func NewVaultService(
	keys crypto.KeyDeriver,
	cipher crypto.Cipher,
	hasher crypto.ContentHasher,
	storages *store.Storages,
	logger *logger.Logger,
) VaultService {
	return &vaultService{
		keys:     keys,
		cipher:   cipher,
		hasher:   hasher,
		blobs:    storages.BlobStore,
		registry: storages.Registry,
		pending:  storages.PendingRegistrations,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *vaultService) Upload(ctx context.Context, req models.UploadRequest) (models.UploadResult, error) {
	contentHash := s.hasher.Hash(req.Content)
	log := s.logger.With().
		Str("content_hash", contentHash).
		Str("filename", req.Filename).
		Str("category", req.Category).
		Int("size", len(req.Content)).
		Logger()
	log.Debug().Stringer("stage", StageHashing).Msg("document hashed")

	exists, err := s.registry.Exists(ctx, contentHash)
	if err != nil {
		log.Err(err).Msg("duplicate check failed")
		return models.UploadResult{}, fail(StageDuplicateCheck, fmt.Errorf("%w: %w", ErrRegistryUnavailable, err))
	}
	if exists {
		log.Info().Msg("duplicate document rejected")
		return models.UploadResult{}, fail(StageDuplicateCheck, ErrDuplicateDocument)
	}

	key := s.keys.Derive(req.Password)
	defer clear(key)
	log.Debug().Stringer("stage", StageKeyDerived).Str("key_scheme", s.keys.Scheme()).Msg("key derived")

	iv, ciphertext, err := s.cipher.Encrypt(req.Content, key)
	if err != nil {
		log.Error().Msg("encryption failed")
		return models.UploadResult{}, fail(StageEncrypted, ErrEncryption)
	}

	locator, err := s.blobs.Store(ctx, ciphertext)
	if err != nil {
		log.Err(err).Msg("blob store failed")
		return models.UploadResult{}, fail(StageStored, fmt.Errorf("%w: %w", ErrStoreUnavailable, err))
	}

	record := models.DocumentRecord{
		ContentHash:  contentHash,
		Locator:      locator,
		IV:           hex.EncodeToString(iv),
		Filename:     req.Filename,
		MimeType:     req.MimeType,
		Category:     req.Category,
		KeyScheme:    s.keys.Scheme(),
		CipherScheme: s.cipher.Scheme(),
		CreatedAt:    s.now().UTC(),
	}
	log = log.With().Str("locator", locator).Logger()

	err = s.registry.Record(ctx, record)
	if errors.Is(err, store.ErrAlreadyRegistered) {
		// a concurrent upload of the same content won the insert; our blob stays orphaned
		log.Warn().Msg("document registered concurrently, stored blob is orphaned")
		return models.UploadResult{}, fail(StageRegistered, ErrDuplicateDocument)
	}
	if err != nil {
		log.Err(err).Msg("registration failed, keeping pending registration")
		if pendingErr := s.pending.Add(ctx, record); pendingErr != nil {
			log.Err(pendingErr).Msg("failed to save pending registration")
		}
		return models.NewUploadResult(record, false),
			fail(StageRegistered, fmt.Errorf("%w: %w: %w", ErrPartialUpload, ErrRegistryUnavailable, err))
	}

	log.Info().Stringer("stage", StageCompleted).Msg("document uploaded")
	return models.NewUploadResult(record, true), nil
}

func (s *vaultService) Retrieve(ctx context.Context, req models.RetrieveRequest) (models.RetrieveResult, error) {
	iv, err := hex.DecodeString(req.IV)
	if err != nil {
		return models.RetrieveResult{}, fail(StageReceived, fmt.Errorf("%w: iv is not hex encoded", ErrValidation))
	}

	log := s.logger.With().Str("locator", req.Locator).Logger()

	key := s.keys.Derive(req.Password)
	defer clear(key)

	ciphertext, err := s.blobs.Fetch(ctx, req.Locator)
	if errors.Is(err, store.ErrBlobNotFound) {
		return models.RetrieveResult{}, fail(StageFetched, fmt.Errorf("%w: %w", ErrNotFound, err))
	}
	if err != nil {
		log.Err(err).Msg("blob fetch failed")
		return models.RetrieveResult{}, fail(StageFetched, fmt.Errorf("%w: %w", ErrStoreUnavailable, err))
	}

	plaintext, err := s.cipher.Decrypt(ciphertext, key, iv)
	if err != nil {
		log.Info().Msg("decryption failed")
		return models.RetrieveResult{}, fail(StageDecrypted, ErrDecryption)
	}

	if req.ExpectedHash != "" {
		if got := s.hasher.Hash(plaintext); got != req.ExpectedHash {
			clear(plaintext)
			log.Warn().Str("expected_hash", req.ExpectedHash).Msg("integrity check failed")
			return models.RetrieveResult{}, fail(StageVerified, ErrIntegrityMismatch)
		}
	}

	log.Info().Stringer("stage", StageCompleted).Int("size", len(plaintext)).Msg("document retrieved")
	return models.RetrieveResult{
		Content:  plaintext,
		Filename: req.Filename,
		MimeType: req.MimeType,
	}, nil
}

func (s *vaultService) RetrieveDocument(ctx context.Context, contentHash, password string) (models.RetrieveResult, error) {
	record, err := s.Lookup(ctx, contentHash)
	if err != nil {
		return models.RetrieveResult{}, fail(StageReceived, err)
	}

	if (record.KeyScheme != "" && record.KeyScheme != s.keys.Scheme()) ||
		(record.CipherScheme != "" && record.CipherScheme != s.cipher.Scheme()) {
		return models.RetrieveResult{}, fail(StageReceived, fmt.Errorf(
			"%w: document was sealed with %s/%s", ErrValidation, record.KeyScheme, record.CipherScheme))
	}

	return s.Retrieve(ctx, models.RetrieveRequest{
		Locator:      record.Locator,
		IV:           record.IV,
		Password:     password,
		ExpectedHash: record.ContentHash,
		Filename:     record.Filename,
		MimeType:     record.MimeType,
	})
}

func (s *vaultService) Verify(ctx context.Context, contentHash string) (bool, error) {
	exists, err := s.registry.Exists(ctx, contentHash)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrRegistryUnavailable, err)
	}
	return exists, nil
}

func (s *vaultService) Lookup(ctx context.Context, contentHash string) (models.DocumentRecord, error) {
	record, err := s.registry.Lookup(ctx, contentHash)
	if errors.Is(err, store.ErrDocumentNotFound) {
		return models.DocumentRecord{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if err != nil {
		return models.DocumentRecord{}, fmt.Errorf("%w: %w", ErrRegistryUnavailable, err)
	}
	return record, nil
}

func (s *vaultService) List(ctx context.Context, filter models.DocumentFilter) ([]models.DocumentRecord, error) {
	records, err := s.registry.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegistryUnavailable, err)
	}
	return records, nil
}

func (s *vaultService) Fingerprint(content []byte) string {
	return s.hasher.Hash(content)
}

func (s *vaultService) CompleteRegistration(ctx context.Context, contentHash string) (models.DocumentRecord, error) {
	record, err := s.pending.Get(ctx, contentHash)
	if errors.Is(err, store.ErrPendingNotFound) {
		return models.DocumentRecord{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if err != nil {
		return models.DocumentRecord{}, fmt.Errorf("%w: %w", ErrRegistryUnavailable, err)
	}

	log := s.logger.With().Str("content_hash", contentHash).Str("locator", record.Locator).Logger()

	err = s.registry.Record(ctx, record)
	if errors.Is(err, store.ErrAlreadyRegistered) {
		if rmErr := s.pending.Remove(ctx, contentHash); rmErr != nil {
			log.Err(rmErr).Msg("failed to drop pending registration")
		}
		// an earlier attempt may have registered this very blob
		if existing, lookupErr := s.registry.Lookup(ctx, contentHash); lookupErr == nil && existing.Locator == record.Locator {
			log.Info().Msg("pending registration was already completed")
			return existing, nil
		}
		log.Warn().Msg("pending document registered elsewhere, dropping it")
		return models.DocumentRecord{}, fail(StageRegistered, ErrDuplicateDocument)
	}
	if err != nil {
		return models.DocumentRecord{}, fail(StageRegistered, fmt.Errorf("%w: %w", ErrRegistryUnavailable, err))
	}

	if err = s.pending.Remove(ctx, contentHash); err != nil {
		log.Err(err).Msg("registered, but failed to drop pending registration")
	}

	log.Info().Msg("pending registration completed")
	return record, nil
}

func (s *vaultService) PendingRegistrations(ctx context.Context) ([]models.DocumentRecord, error) {
	records, err := s.pending.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegistryUnavailable, err)
	}
	return records, nil
}
