package validators

import (
	"context"
	"mime"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/go-doc-vault/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldPassword targets the owner's secret of an upload or retrieval.
	FieldPassword = "password"

	// FieldFilename targets the original document name.
	FieldFilename = "filename"

	// FieldCategory targets the listing category of an upload.
	FieldCategory = "category"

	// FieldMimeType targets the optional media type of an upload.
	FieldMimeType = "mime_type"

	// FieldLocator targets the blob store locator of a retrieval.
	FieldLocator = "locator"

	// FieldIV targets the hex encoded initialization vector of a retrieval.
	FieldIV = "iv"

	// FieldExpectedHash targets the optional integrity hash of a retrieval.
	FieldExpectedHash = "expected_hash"

	// FieldContentHash targets a bare content hash (registry key).
	FieldContentHash = "content_hash"

	// FieldLimit targets the page size of a listing.
	FieldLimit = "limit"

	// FieldQuery targets the search string of a listing.
	FieldQuery = "query"
)

const (
	// MaxListLimit is the largest page a listing may ask for.
	MaxListLimit = 1000

	// MaxQueryLength bounds the listing search string.
	MaxQueryLength = 256

	// MinStrongPasswordLength is the shortest password the policy of
	// [WithPasswordPolicy] accepts.
	MinStrongPasswordLength = 10

	ivHexLength   = 32
	hashHexLength = 64
)

// DocumentValidator implements the Validator interface for the document
// vault inputs: UploadRequest, RetrieveRequest, DocumentFilter and bare
// content hashes (string).
type DocumentValidator struct {
	passwordPolicy bool
}

// DocumentValidatorOption configures a DocumentValidator.
type DocumentValidatorOption func(*DocumentValidator)

// WithPasswordPolicy makes uploads require a strong password. Retrievals
// keep accepting any non-empty password so older documents stay readable.
func WithPasswordPolicy() DocumentValidatorOption {
	return func(v *DocumentValidator) {
		v.passwordPolicy = true
	}
}

// NewDocumentValidator constructs a new DocumentValidator and returns it as
// the Validator interface.
func NewDocumentValidator(opts ...DocumentValidatorOption) Validator {
	v := &DocumentValidator{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms of the
// request models are accepted; a string is validated as a content hash.
//
// Returns ErrUnsupportedType if obj does not match any known model.
// Optional fields restrict validation to the named subset; when omitted,
// the default set of the type is validated.
func (v *DocumentValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.UploadRequest:
		return v.validateUploadRequest(ctx, value, fields...)
	case *models.UploadRequest:
		return v.validateUploadRequest(ctx, *value, fields...)

	case models.RetrieveRequest:
		return v.validateRetrieveRequest(ctx, value, fields...)
	case *models.RetrieveRequest:
		return v.validateRetrieveRequest(ctx, *value, fields...)

	case models.DocumentFilter:
		return v.validateDocumentFilter(ctx, value, fields...)
	case *models.DocumentFilter:
		return v.validateDocumentFilter(ctx, *value, fields...)

	case string:
		if !isContentHash(value) {
			return ErrInvalidHash
		}
		return nil

	default:
		return ErrUnsupportedType
	}
}

// validateUploadRequest checks an upload before it is hashed.
//
// Default fields: password, filename, category, mime type.
func (v *DocumentValidator) validateUploadRequest(_ context.Context, req models.UploadRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPassword, FieldFilename, FieldCategory, FieldMimeType}
	}

	for _, f := range fields {
		switch f {
		case FieldPassword:
			if req.Password == "" {
				return ErrEmptyPassword
			}
			if v.passwordPolicy && !isStrongPassword(req.Password) {
				return ErrWeakPassword
			}
		case FieldFilename:
			if err := validateFilename(req.Filename); err != nil {
				return err
			}
		case FieldCategory:
			if strings.TrimSpace(req.Category) == "" {
				return ErrEmptyCategory
			}
		case FieldMimeType:
			if req.MimeType == "" {
				continue
			}
			if _, _, err := mime.ParseMediaType(req.MimeType); err != nil {
				return ErrInvalidMimeType
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateRetrieveRequest checks a retrieval before the key is derived.
//
// Default fields: locator, iv, password, expected hash. The expected hash is
// optional and only checked for shape when present.
func (v *DocumentValidator) validateRetrieveRequest(_ context.Context, req models.RetrieveRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLocator, FieldIV, FieldPassword, FieldExpectedHash}
	}

	for _, f := range fields {
		switch f {
		case FieldLocator:
			if strings.TrimSpace(req.Locator) == "" {
				return ErrEmptyLocator
			}
		case FieldIV:
			if len(req.IV) != ivHexLength || !isHex(req.IV) {
				return ErrInvalidIV
			}
		case FieldPassword:
			if req.Password == "" {
				return ErrEmptyPassword
			}
		case FieldExpectedHash:
			if req.ExpectedHash != "" && !isContentHash(req.ExpectedHash) {
				return ErrInvalidHash
			}
		case FieldFilename:
			if req.Filename == "" {
				continue
			}
			if err := validateFilename(req.Filename); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateDocumentFilter checks a listing filter.
//
// Default fields: limit, query.
func (v *DocumentValidator) validateDocumentFilter(_ context.Context, filter models.DocumentFilter, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLimit, FieldQuery}
	}

	for _, f := range fields {
		switch f {
		case FieldLimit:
			if filter.Limit > MaxListLimit {
				return ErrInvalidLimit
			}
		case FieldQuery:
			if len(filter.Query) > MaxQueryLength {
				return ErrInvalidQuery
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateFilename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyFilename
	}
	if name == "." || name == ".." || strings.ContainsAny(name, "/\\\x00") {
		return ErrInvalidFilename
	}
	return nil
}

func isStrongPassword(password string) bool {
	if utf8.RuneCountInString(password) < MinStrongPasswordLength {
		return false
	}

	var digit, lower, upper, special bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case !unicode.IsLetter(r) && !unicode.IsSpace(r):
			special = true
		}
	}
	return digit && lower && upper && special
}

// isContentHash reports whether s is a lower-case hex SHA-256 digest.
func isContentHash(s string) bool {
	if len(s) != hashHexLength {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func isHex(s string) bool {
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}
