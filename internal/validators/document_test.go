// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/go-doc-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

const (
	validHash = "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	validIV   = "00112233445566778899aabbccddeeff"
)

func validUploadRequest() models.UploadRequest {
	return models.UploadRequest{
		Content:  []byte("hello world"),
		Password: "Secr3t!",
		Filename: "hello.txt",
		MimeType: "text/plain; charset=utf-8",
		Category: "notes",
	}
}

func validRetrieveRequest() models.RetrieveRequest {
	return models.RetrieveRequest{
		Locator:      "QmT78zSuBmuS4z925WZfrqQ1qHaJ56DQaTfyMUF7F8ff5o",
		IV:           validIV,
		Password:     "Secr3t!",
		ExpectedHash: validHash,
		Filename:     "hello.txt",
	}
}

// ---------------------------------------------------------------------------
// TestValidate_Dispatch
// ---------------------------------------------------------------------------

func TestValidate_Dispatch(t *testing.T) {
	v := NewDocumentValidator()
	ctx := context.Background()

	t.Run("unsupported type", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, 42), ErrUnsupportedType)
	})

	t.Run("UploadRequest value", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, validUploadRequest()))
	})

	t.Run("UploadRequest pointer", func(t *testing.T) {
		req := validUploadRequest()
		require.NoError(t, v.Validate(ctx, &req))
	})

	t.Run("RetrieveRequest value", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, validRetrieveRequest()))
	})

	t.Run("RetrieveRequest pointer", func(t *testing.T) {
		req := validRetrieveRequest()
		require.NoError(t, v.Validate(ctx, &req))
	})

	t.Run("DocumentFilter value", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, models.DocumentFilter{Category: "all", Limit: 10}))
	})

	t.Run("DocumentFilter pointer", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, &models.DocumentFilter{}))
	})

	t.Run("content hash", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, validHash))
	})
}

// ---------------------------------------------------------------------------
// UploadRequest
// ---------------------------------------------------------------------------

func TestValidate_UploadRequest(t *testing.T) {
	v := NewDocumentValidator()

	tests := []struct {
		name    string
		mutate  func(r *models.UploadRequest)
		fields  []string
		wantErr error
	}{
		{name: "empty password", mutate: func(r *models.UploadRequest) { r.Password = "" }, wantErr: ErrEmptyPassword},
		{name: "empty filename", mutate: func(r *models.UploadRequest) { r.Filename = " " }, wantErr: ErrEmptyFilename},
		{name: "filename with slash", mutate: func(r *models.UploadRequest) { r.Filename = "../etc/passwd" }, wantErr: ErrInvalidFilename},
		{name: "filename with backslash", mutate: func(r *models.UploadRequest) { r.Filename = `dir\file` }, wantErr: ErrInvalidFilename},
		{name: "dot dot", mutate: func(r *models.UploadRequest) { r.Filename = ".." }, wantErr: ErrInvalidFilename},
		{name: "empty category", mutate: func(r *models.UploadRequest) { r.Category = "" }, wantErr: ErrEmptyCategory},
		{name: "bad mime type", mutate: func(r *models.UploadRequest) { r.MimeType = "text/" }, wantErr: ErrInvalidMimeType},
		{name: "no mime type", mutate: func(r *models.UploadRequest) { r.MimeType = "" }},
		{name: "empty content is allowed", mutate: func(r *models.UploadRequest) { r.Content = nil }},
		{
			name:   "scoped to password skips category",
			mutate: func(r *models.UploadRequest) { r.Category = "" },
			fields: []string{FieldPassword},
		},
		{name: "unknown field", mutate: func(*models.UploadRequest) {}, fields: []string{"owner"}, wantErr: ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validUploadRequest()
			tt.mutate(&req)

			err := v.Validate(context.Background(), req, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_UploadRequest_PasswordPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "strong", password: "Corr3ct-Horse"},
		{name: "unicode letters", password: "Пароль-2026x"},
		{name: "too short", password: "Sh0rt!pw", wantErr: ErrWeakPassword},
		{name: "no digit", password: "NoDigits-here", wantErr: ErrWeakPassword},
		{name: "no lower", password: "NO-LOWER-123", wantErr: ErrWeakPassword},
		{name: "no upper", password: "no-upper-123", wantErr: ErrWeakPassword},
		{name: "no special", password: "NoSpecial123", wantErr: ErrWeakPassword},
		{name: "space is not special", password: "No Special 123", wantErr: ErrWeakPassword},
		{name: "empty", password: "", wantErr: ErrEmptyPassword},
	}

	v := NewDocumentValidator(WithPasswordPolicy())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validUploadRequest()
			req.Password = tt.password

			err := v.Validate(context.Background(), req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_PasswordPolicyIsOptIn(t *testing.T) {
	req := validUploadRequest()
	req.Password = "weak"

	assert.NoError(t, NewDocumentValidator().Validate(context.Background(), req))
	assert.ErrorIs(t, NewDocumentValidator(WithPasswordPolicy()).Validate(context.Background(), req), ErrWeakPassword)
}

func TestValidate_PasswordPolicySkipsRetrieval(t *testing.T) {
	v := NewDocumentValidator(WithPasswordPolicy())

	req := validRetrieveRequest()
	req.Password = "weak"

	assert.NoError(t, v.Validate(context.Background(), req))
}

// ---------------------------------------------------------------------------
// RetrieveRequest
// ---------------------------------------------------------------------------

func TestValidate_RetrieveRequest(t *testing.T) {
	v := NewDocumentValidator()

	tests := []struct {
		name    string
		mutate  func(r *models.RetrieveRequest)
		fields  []string
		wantErr error
	}{
		{name: "empty locator", mutate: func(r *models.RetrieveRequest) { r.Locator = "" }, wantErr: ErrEmptyLocator},
		{name: "short iv", mutate: func(r *models.RetrieveRequest) { r.IV = "0011" }, wantErr: ErrInvalidIV},
		{name: "non hex iv", mutate: func(r *models.RetrieveRequest) { r.IV = strings.Repeat("zz", 16) }, wantErr: ErrInvalidIV},
		{name: "upper-case iv", mutate: func(r *models.RetrieveRequest) { r.IV = strings.ToUpper(validIV) }},
		{name: "empty password", mutate: func(r *models.RetrieveRequest) { r.Password = "" }, wantErr: ErrEmptyPassword},
		{name: "no expected hash", mutate: func(r *models.RetrieveRequest) { r.ExpectedHash = "" }},
		{name: "upper-case hash", mutate: func(r *models.RetrieveRequest) { r.ExpectedHash = strings.ToUpper(validHash) }, wantErr: ErrInvalidHash},
		{name: "short hash", mutate: func(r *models.RetrieveRequest) { r.ExpectedHash = "abc" }, wantErr: ErrInvalidHash},
		{
			name:    "scoped filename",
			mutate:  func(r *models.RetrieveRequest) { r.Filename = "a/b" },
			fields:  []string{FieldFilename},
			wantErr: ErrInvalidFilename,
		},
		{name: "unknown field", mutate: func(*models.RetrieveRequest) {}, fields: []string{"category"}, wantErr: ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRetrieveRequest()
			tt.mutate(&req)

			err := v.Validate(context.Background(), req, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// DocumentFilter and content hashes
// ---------------------------------------------------------------------------

func TestValidate_DocumentFilter(t *testing.T) {
	v := NewDocumentValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.DocumentFilter{Limit: MaxListLimit}))
	assert.ErrorIs(t, v.Validate(ctx, models.DocumentFilter{Limit: MaxListLimit + 1}), ErrInvalidLimit)
	assert.ErrorIs(t, v.Validate(ctx, models.DocumentFilter{Query: strings.Repeat("q", MaxQueryLength+1)}), ErrInvalidQuery)
	assert.ErrorIs(t, v.Validate(ctx, models.DocumentFilter{}, FieldPassword), ErrUnknownField)
}

func TestValidate_ContentHash(t *testing.T) {
	v := NewDocumentValidator()
	ctx := context.Background()

	tests := []struct {
		name  string
		hash  string
		valid bool
	}{
		{name: "sha256 of empty input", hash: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", valid: true},
		{name: "hello world", hash: validHash, valid: true},
		{name: "empty", hash: ""},
		{name: "upper-case", hash: strings.ToUpper(validHash)},
		{name: "too long", hash: validHash + "00"},
		{name: "non hex", hash: strings.Repeat("g", 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.hash)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidHash)
		})
	}
}
