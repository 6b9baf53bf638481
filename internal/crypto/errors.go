// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

// Sentinel errors returned by the cipher implementations. Messages stay
// generic so callers cannot learn which factor of a decryption was wrong.
var (
	// ErrEncryption is returned when a key of the wrong size is supplied or
	// the random source fails.
	ErrEncryption = errors.New("encryption failed")

	// ErrDecryption is returned for any decryption failure: wrong key, wrong
	// IV, truncated or tampered ciphertext, invalid padding.
	ErrDecryption = errors.New("decryption failed")

	// ErrUnknownScheme is returned by the scheme factories for unsupported names.
	ErrUnknownScheme = errors.New("unknown crypto scheme")
)
