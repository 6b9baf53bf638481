package service

import "errors"

// Pipeline error taxonomy. Every error returned by [VaultService] matches
// exactly one of these with [errors.Is], except a partial upload, which
// matches both [ErrPartialUpload] and [ErrRegistryUnavailable].
var (
	// ErrValidation marks missing or malformed input. Not retryable without
	// fixing the input.
	ErrValidation = errors.New("invalid input")

	// ErrDuplicateDocument is returned when the content hash is already
	// registered.
	ErrDuplicateDocument = errors.New("document is already registered")

	ErrEncryption = errors.New("encryption failed")

	// ErrDecryption never tells whether the password, the IV or the stored
	// blob was at fault.
	ErrDecryption = errors.New("decryption failed")

	// ErrIntegrityMismatch is returned when decrypted content does not hash to
	// the expected content hash.
	ErrIntegrityMismatch = errors.New("content hash mismatch")

	ErrStoreUnavailable    = errors.New("blob store unavailable")
	ErrRegistryUnavailable = errors.New("registry unavailable")

	// ErrPartialUpload means the ciphertext was stored but the registry entry
	// was not written. Retry registration, not the upload.
	ErrPartialUpload = errors.New("document stored but not registered")

	ErrNotFound = errors.New("not found")
)

var ErrVersionIsNotSpecified = errors.New("app version is not specified")
