package models

// UploadRequest is the input of a document upload.
//
// Password is consumed by key derivation and never copied into results,
// records or logs.
type UploadRequest struct {
	// Content is the raw plaintext document.
	Content []byte `json:"-"`

	// Password is the owner's secret.
	Password string `json:"-"`

	Filename string `json:"filename"`
	MimeType string `json:"mime_type"`
	Category string `json:"category"`
}

// UploadResult describes a stored document. It intentionally mirrors
// [DocumentRecord] minus bookkeeping, and never carries the password.
type UploadResult struct {
	ContentHash string `json:"content_hash"`
	Locator     string `json:"locator"`
	IV          string `json:"iv"`
	Filename    string `json:"filename"`
	MimeType    string `json:"mime_type"`
	Category    string `json:"category"`

	// Registered is false when the ciphertext was stored but the registry
	// entry could not be written yet.
	Registered bool `json:"registered"`
}

// NewUploadResult builds an [UploadResult] from a record.
func NewUploadResult(rec DocumentRecord, registered bool) UploadResult {
	return UploadResult{
		ContentHash: rec.ContentHash,
		Locator:     rec.Locator,
		IV:          rec.IV,
		Filename:    rec.Filename,
		MimeType:    rec.MimeType,
		Category:    rec.Category,
		Registered:  registered,
	}
}
