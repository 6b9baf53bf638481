package store

import "errors"

// Sentinel errors returned by storage implementations to signal well-known
// failure conditions. Callers should use [errors.Is] to match against these
// values.
var (
	// ErrBlobNotFound is returned when no blob exists under the requested
	// locator.
	ErrBlobNotFound = errors.New("blob was not found")

	// ErrBlobStoreUnavailable is returned when the blob store cannot be
	// reached or answers with an unexpected failure.
	ErrBlobStoreUnavailable = errors.New("blob store is unavailable")

	// ErrAlreadyRegistered is returned by [Registry.Record] when a record
	// with the same content hash already exists.
	ErrAlreadyRegistered = errors.New("document is already registered")

	// ErrDocumentNotFound is returned when no registry record matches the
	// content hash.
	ErrDocumentNotFound = errors.New("document was not found")

	// ErrPendingNotFound is returned when the outbox holds no pending
	// registration for the content hash.
	ErrPendingNotFound = errors.New("pending registration was not found")

	// ErrInvalidBlobDir is returned when the file blob store is configured
	// without a directory.
	ErrInvalidBlobDir = errors.New("blob directory is not set")

	// ErrUnsupportedBackend is returned when configuration names a storage
	// backend that does not exist.
	ErrUnsupportedBackend = errors.New("unsupported storage backend")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a storage-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan document row")

	// ErrScanningRows is returned when multi-row iteration fails mid-result-set.
	ErrScanningRows = errors.New("failed to scan document rows")

	// ErrEncodingRecord is returned when a record cannot be serialized for a
	// key-value backend.
	ErrEncodingRecord = errors.New("failed to encode document record")

	// ErrDecodingRecord is returned when a stored record cannot be deserialized.
	ErrDecodingRecord = errors.New("failed to decode document record")
)
