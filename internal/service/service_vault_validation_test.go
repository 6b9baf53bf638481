package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-doc-vault/internal/mock"
	"github.com/MKhiriev/go-doc-vault/internal/validators"
	"github.com/MKhiriev/go-doc-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestValidationSvc(t *testing.T) (VaultService, *mock.MockVaultService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	inner := mock.NewMockVaultService(ctrl)
	return NewVaultValidationService().Wrap(inner), inner
}

func TestVaultValidationService_Upload(t *testing.T) {
	svc, inner := newTestValidationSvc(t)
	ctx := context.Background()

	t.Run("invalid input never reaches the pipeline", func(t *testing.T) {
		req := testUploadRequest()
		req.Password = ""

		_, err := svc.Upload(ctx, req)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
		assert.ErrorIs(t, err, validators.ErrEmptyPassword)
		assertStage(t, err, StageReceived)
	})

	t.Run("valid input is delegated", func(t *testing.T) {
		want := models.NewUploadResult(testRecord(), true)
		inner.EXPECT().Upload(ctx, testUploadRequest()).Return(want, nil)

		got, err := svc.Upload(ctx, testUploadRequest())

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestVaultValidationService_Retrieve(t *testing.T) {
	svc, inner := newTestValidationSvc(t)
	ctx := context.Background()

	req := testRetrieveRequest()
	req.IV = "abc"
	_, err := svc.Retrieve(ctx, req)
	assert.ErrorIs(t, err, ErrValidation)

	inner.EXPECT().Retrieve(ctx, testRetrieveRequest()).Return(models.RetrieveResult{Content: testContent}, nil)
	res, err := svc.Retrieve(ctx, testRetrieveRequest())
	require.NoError(t, err)
	assert.Equal(t, testContent, res.Content)
}

func TestVaultValidationService_RetrieveDocument(t *testing.T) {
	svc, inner := newTestValidationSvc(t)
	ctx := context.Background()

	_, err := svc.RetrieveDocument(ctx, "short", testPassword)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.RetrieveDocument(ctx, testHash, "")
	assert.ErrorIs(t, err, ErrValidation)

	inner.EXPECT().RetrieveDocument(ctx, testHash, testPassword).Return(models.RetrieveResult{}, nil)
	_, err = svc.RetrieveDocument(ctx, testHash, testPassword)
	assert.NoError(t, err)
}

func TestVaultValidationService_HashOperations(t *testing.T) {
	svc, inner := newTestValidationSvc(t)
	ctx := context.Background()

	_, err := svc.Verify(ctx, "XYZ")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Lookup(ctx, "XYZ")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.CompleteRegistration(ctx, "XYZ")
	assert.ErrorIs(t, err, ErrValidation)

	inner.EXPECT().Verify(ctx, testHash).Return(true, nil)
	inner.EXPECT().Lookup(ctx, testHash).Return(testRecord(), nil)
	inner.EXPECT().CompleteRegistration(ctx, testHash).Return(testRecord(), nil)

	ok, err := svc.Verify(ctx, testHash)
	require.NoError(t, err)
	assert.True(t, ok)
	_, err = svc.Lookup(ctx, testHash)
	require.NoError(t, err)
	_, err = svc.CompleteRegistration(ctx, testHash)
	require.NoError(t, err)
}

func TestVaultValidationService_ListAndPassThrough(t *testing.T) {
	svc, inner := newTestValidationSvc(t)
	ctx := context.Background()

	_, err := svc.List(ctx, models.DocumentFilter{Limit: validators.MaxListLimit + 1})
	assert.ErrorIs(t, err, ErrValidation)

	inner.EXPECT().List(ctx, models.DocumentFilter{Limit: 5}).Return(nil, nil)
	inner.EXPECT().Fingerprint(testContent).Return(testHash)
	inner.EXPECT().PendingRegistrations(ctx).Return(nil, nil)

	_, err = svc.List(ctx, models.DocumentFilter{Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, testHash, svc.Fingerprint(testContent))
	_, err = svc.PendingRegistrations(ctx)
	require.NoError(t, err)
}

func TestPipelineError_MessageAndUnknownStage(t *testing.T) {
	err := fail(StageDecrypted, ErrDecryption)

	assert.Equal(t, "decrypted: decryption failed", err.Error())
	assert.ErrorIs(t, err, ErrDecryption)
	assert.Equal(t, "stage(99)", Stage(99).String())
}
