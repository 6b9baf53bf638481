// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// DocumentRecord is the immutable registry entry written once a document's
// ciphertext has been stored in the blob store.
//
// A record never carries the owner's password or any key material. KeyScheme
// and CipherScheme only name the algorithms that sealed the blob so retrieval
// can refuse a mismatching pipeline instead of producing garbage.
type DocumentRecord struct {
	// ContentHash is the lower-case hex SHA-256 of the plaintext. Unique
	// registry key.
	ContentHash string `json:"content_hash" bson:"content_hash"`

	// Locator is the blob store identifier of the ciphertext (e.g. an IPFS CID).
	Locator string `json:"locator" bson:"locator"`

	// IV is the hex encoded initialization vector used for encryption.
	IV string `json:"iv" bson:"iv"`

	Filename string `json:"filename" bson:"filename"`
	MimeType string `json:"mime_type" bson:"mime_type"`
	Category string `json:"category" bson:"category"`

	KeyScheme    string `json:"key_scheme" bson:"key_scheme"`
	CipherScheme string `json:"cipher_scheme" bson:"cipher_scheme"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// DocumentFilter narrows a registry listing.
type DocumentFilter struct {
	// Category matches exactly (case-insensitive). Empty or "all" disables
	// the filter.
	Category string `json:"category,omitempty"`

	// Query is a case-insensitive substring matched against the filename,
	// the content hash and the mime type.
	Query string `json:"query,omitempty"`

	// Limit caps the number of returned records. Zero means no limit.
	Limit uint64 `json:"limit,omitempty"`
}

// CategoryAll is the listing pseudo-category that disables category filtering.
const CategoryAll = "all"

// HasCategory reports whether the filter restricts by category.
func (f DocumentFilter) HasCategory() bool {
	return f.Category != "" && f.Category != CategoryAll
}
