package models

// RetrieveRequest identifies a stored ciphertext and the secret needed to
// open it.
type RetrieveRequest struct {
	Locator string `json:"locator"`

	// IV is the hex encoded initialization vector returned by the upload.
	IV string `json:"iv"`

	Password string `json:"password"`

	// ExpectedHash, when set, is compared with the SHA-256 of the decrypted
	// plaintext.
	ExpectedHash string `json:"expected_hash,omitempty"`

	Filename string `json:"filename,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
}

// RetrieveResult is a decrypted document.
type RetrieveResult struct {
	Content  []byte
	Filename string
	MimeType string
}
