package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-doc-vault/internal/validators"
	"github.com/MKhiriev/go-doc-vault/models"
)

// VaultValidationService rejects malformed input before it reaches the
// wrapped pipeline. Every rejection matches [ErrValidation].
type VaultValidationService struct {
	inner     VaultService
	validator validators.Validator
}

func NewVaultValidationService(opts ...validators.DocumentValidatorOption) VaultServiceWrapper {
	return &VaultValidationService{
		validator: validators.NewDocumentValidator(opts...),
	}
}

func (v *VaultValidationService) Upload(ctx context.Context, req models.UploadRequest) (models.UploadResult, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.UploadResult{}, fail(StageReceived, invalid(err))
	}

	return v.inner.Upload(ctx, req)
}

func (v *VaultValidationService) Retrieve(ctx context.Context, req models.RetrieveRequest) (models.RetrieveResult, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.RetrieveResult{}, fail(StageReceived, invalid(err))
	}

	return v.inner.Retrieve(ctx, req)
}

func (v *VaultValidationService) RetrieveDocument(ctx context.Context, contentHash, password string) (models.RetrieveResult, error) {
	if err := v.validator.Validate(ctx, contentHash); err != nil {
		return models.RetrieveResult{}, fail(StageReceived, invalid(err))
	}
	if err := v.validator.Validate(ctx, models.RetrieveRequest{Password: password}, validators.FieldPassword); err != nil {
		return models.RetrieveResult{}, fail(StageReceived, invalid(err))
	}

	return v.inner.RetrieveDocument(ctx, contentHash, password)
}

func (v *VaultValidationService) Verify(ctx context.Context, contentHash string) (bool, error) {
	if err := v.validator.Validate(ctx, contentHash); err != nil {
		return false, invalid(err)
	}

	return v.inner.Verify(ctx, contentHash)
}

func (v *VaultValidationService) Lookup(ctx context.Context, contentHash string) (models.DocumentRecord, error) {
	if err := v.validator.Validate(ctx, contentHash); err != nil {
		return models.DocumentRecord{}, invalid(err)
	}

	return v.inner.Lookup(ctx, contentHash)
}

func (v *VaultValidationService) List(ctx context.Context, filter models.DocumentFilter) ([]models.DocumentRecord, error) {
	if err := v.validator.Validate(ctx, filter); err != nil {
		return nil, invalid(err)
	}

	return v.inner.List(ctx, filter)
}

func (v *VaultValidationService) Fingerprint(content []byte) string {
	return v.inner.Fingerprint(content)
}

func (v *VaultValidationService) CompleteRegistration(ctx context.Context, contentHash string) (models.DocumentRecord, error) {
	if err := v.validator.Validate(ctx, contentHash); err != nil {
		return models.DocumentRecord{}, invalid(err)
	}

	return v.inner.CompleteRegistration(ctx, contentHash)
}

func (v *VaultValidationService) PendingRegistrations(ctx context.Context) ([]models.DocumentRecord, error) {
	return v.inner.PendingRegistrations(ctx)
}

func (v *VaultValidationService) Wrap(wrapper VaultService) VaultService {
	v.inner = wrapper
	return v
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}
