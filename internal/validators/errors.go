package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyPassword   = errors.New("password is required")
	ErrWeakPassword    = errors.New("password must have at least 10 characters, a digit, a lower-case letter, an upper-case letter and a special character")
	ErrEmptyFilename   = errors.New("filename is required")
	ErrInvalidFilename = errors.New("filename must not contain path elements")
	ErrEmptyCategory   = errors.New("category is required")
	ErrEmptyLocator    = errors.New("locator is required")
	ErrInvalidIV       = errors.New("iv must be 32 hex characters")
	ErrInvalidHash     = errors.New("content hash must be 64 lower-case hex characters")
	ErrInvalidLimit    = errors.New("limit is too large")
	ErrInvalidQuery    = errors.New("search query is too long")
	ErrInvalidMimeType = errors.New("invalid mime type")
)
