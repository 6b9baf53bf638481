package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// KeyDeriver turns a user password into a 32-byte symmetric key.
//
// Derivation is deterministic: the same password (and, for salted schemes,
// the same deployment salt) always yields the same key. It never fails.
type KeyDeriver interface {
	Derive(password string) []byte

	// Scheme names the derivation algorithm. It is stored with every
	// document record.
	Scheme() string
}

// Cipher performs symmetric encryption with a fresh random IV per call.
//
// Encrypt never accepts a caller-supplied IV. Decrypt reports every failure
// as [ErrDecryption] without revealing whether the key, the IV or the
// ciphertext was wrong.
type Cipher interface {
	Encrypt(plaintext, key []byte) (iv, ciphertext []byte, err error)
	Decrypt(ciphertext, key, iv []byte) ([]byte, error)

	// IVSize is the length of the IV produced by Encrypt.
	IVSize() int

	Scheme() string
}

// ContentHasher fingerprints plaintext documents.
type ContentHasher interface {
	// Hash returns the lower-case hex digest of data.
	Hash(data []byte) string
}
