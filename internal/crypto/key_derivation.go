// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"fmt"

	"golang.org/x/crypto/argon2"
)

// KeySize is the length in bytes of every derived key (AES-256).
const KeySize = 32

// Key derivation scheme names.
const (
	SchemeZeroPad  = "zeropad"
	SchemeArgon2ID = "argon2id"
)

// ZeroPadKeyDeriver derives a key by right-padding the UTF-8 password with
// zero bytes up to [KeySize], or truncating it to the first [KeySize] bytes.
//
// The derived key has at most the entropy of the password. It exists for
// compatibility with documents sealed by earlier deployments; prefer
// [Argon2KeyDeriver] for new vaults.
type ZeroPadKeyDeriver struct{}

// NewZeroPadKeyDeriver returns the compatibility key deriver.
func NewZeroPadKeyDeriver() *ZeroPadKeyDeriver {
	return &ZeroPadKeyDeriver{}
}

// Derive implements [KeyDeriver].
func (ZeroPadKeyDeriver) Derive(password string) []byte {
	key := make([]byte, KeySize)
	copy(key, password)
	return key
}

// Scheme implements [KeyDeriver].
func (ZeroPadKeyDeriver) Scheme() string {
	return SchemeZeroPad
}

// Argon2KeyDeriver derives keys with Argon2id and a deployment-wide salt.
type Argon2KeyDeriver struct {
	salt []byte

	// Argon2id tuning parameters.
	time    uint32
	memory  uint32
	threads uint8
}

// NewArgon2KeyDeriver constructs an [Argon2KeyDeriver] with the parameters
// recommended by OWASP:
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
func NewArgon2KeyDeriver(salt []byte) *Argon2KeyDeriver {
	return &Argon2KeyDeriver{
		salt:    salt,
		time:    1,
		memory:  64 * 1024, // 64 MiB
		threads: 4,
	}
}

// Derive implements [KeyDeriver].
func (a *Argon2KeyDeriver) Derive(password string) []byte {
	return argon2.IDKey([]byte(password), a.salt, a.time, a.memory, a.threads, KeySize)
}

// Scheme implements [KeyDeriver].
func (a *Argon2KeyDeriver) Scheme() string {
	return SchemeArgon2ID
}

// NewKeyDeriver returns the deriver registered under scheme. An empty scheme
// selects [SchemeZeroPad]. salt is used by salted schemes only.
func NewKeyDeriver(scheme string, salt []byte) (KeyDeriver, error) {
	switch scheme {
	case "", SchemeZeroPad:
		return NewZeroPadKeyDeriver(), nil
	case SchemeArgon2ID:
		if len(salt) == 0 {
			return nil, fmt.Errorf("%w: %s requires a salt", ErrUnknownScheme, scheme)
		}
		return NewArgon2KeyDeriver(salt), nil
	default:
		return nil, fmt.Errorf("%w: key scheme %q", ErrUnknownScheme, scheme)
	}
}
