// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"
)

// Cipher scheme names.
const (
	SchemeAESCBC = "aes-256-cbc"
	SchemeAESGCM = "aes-256-gcm"
)

// IVSize is the IV length of both cipher schemes.
const IVSize = aes.BlockSize

// CBCCipher is AES-256 in CBC mode with PKCS#7 padding.
//
// CBC offers confidentiality only: a tampered ciphertext is caught by the
// padding check at best. Pair it with content-hash verification on retrieval.
type CBCCipher struct {
	random io.Reader
}

// NewCBCCipher returns a [CBCCipher] that draws IVs from crypto/rand.
func NewCBCCipher() *CBCCipher {
	return &CBCCipher{random: rand.Reader}
}

// Encrypt implements [Cipher].
func (c *CBCCipher) Encrypt(plaintext, key []byte) ([]byte, []byte, error) {
	block, err := newBlock(key, ErrEncryption)
	if err != nil {
		return nil, nil, err
	}

	iv, err := readIV(c.random)
	if err != nil {
		return nil, nil, err
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return iv, ciphertext, nil
}

// Decrypt implements [Cipher].
func (c *CBCCipher) Decrypt(ciphertext, key, iv []byte) ([]byte, error) {
	block, err := newBlock(key, ErrDecryption)
	if err != nil {
		return nil, err
	}
	if len(iv) != aes.BlockSize {
		return nil, ErrDecryption
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, ErrDecryption
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plaintext, ok := pkcs7Unpad(padded, aes.BlockSize)
	if !ok {
		return nil, ErrDecryption
	}
	return plaintext, nil
}

// IVSize implements [Cipher].
func (c *CBCCipher) IVSize() int { return IVSize }

// Scheme implements [Cipher].
func (c *CBCCipher) Scheme() string { return SchemeAESCBC }

// GCMCipher is AES-256-GCM with a 16-byte random nonce used as the IV. The
// authentication tag is appended to the ciphertext.
type GCMCipher struct {
	random io.Reader
}

// NewGCMCipher returns a [GCMCipher] that draws nonces from crypto/rand.
func NewGCMCipher() *GCMCipher {
	return &GCMCipher{random: rand.Reader}
}

// Encrypt implements [Cipher].
func (c *GCMCipher) Encrypt(plaintext, key []byte) ([]byte, []byte, error) {
	aead, err := newGCM(key, ErrEncryption)
	if err != nil {
		return nil, nil, err
	}

	iv, err := readIV(c.random)
	if err != nil {
		return nil, nil, err
	}

	return iv, aead.Seal(nil, iv, plaintext, nil), nil
}

// Decrypt implements [Cipher].
func (c *GCMCipher) Decrypt(ciphertext, key, iv []byte) ([]byte, error) {
	aead, err := newGCM(key, ErrDecryption)
	if err != nil {
		return nil, err
	}
	if len(iv) != aead.NonceSize() || len(ciphertext) < aead.Overhead() {
		return nil, ErrDecryption
	}

	// Opening into a non-nil buffer keeps an empty document as []byte{},
	// the same shape CBCCipher returns.
	plaintext, err := aead.Open(make([]byte, 0, len(ciphertext)-aead.Overhead()), iv, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryption
	}
	return plaintext, nil
}

// IVSize implements [Cipher].
func (c *GCMCipher) IVSize() int { return IVSize }

// Scheme implements [Cipher].
func (c *GCMCipher) Scheme() string { return SchemeAESGCM }

// NewCipher returns the cipher registered under scheme. An empty scheme
// selects [SchemeAESCBC].
func NewCipher(scheme string) (Cipher, error) {
	switch scheme {
	case "", SchemeAESCBC:
		return NewCBCCipher(), nil
	case SchemeAESGCM:
		return NewGCMCipher(), nil
	default:
		return nil, fmt.Errorf("%w: cipher scheme %q", ErrUnknownScheme, scheme)
	}
}

func newBlock(key []byte, sentinel error) (cipher.Block, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes", sentinel, KeySize)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, sentinel
	}
	return block, nil
}

func newGCM(key []byte, sentinel error) (cipher.AEAD, error) {
	block, err := newBlock(key, sentinel)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCMWithNonceSize(block, IVSize)
	if err != nil {
		return nil, sentinel
	}
	return aead, nil
}

func readIV(random io.Reader) ([]byte, error) {
	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(random, iv); err != nil {
		return nil, fmt.Errorf("%w: read iv: %w", ErrEncryption, err)
	}
	return iv, nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(bytes.Clone(data), bytes.Repeat([]byte{byte(n)}, n)...)
}

// pkcs7Unpad validates every padding byte before stripping them.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, bool) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, false
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, false
	}
	pad := data[len(data)-n:]
	if subtle.ConstantTimeCompare(pad, bytes.Repeat([]byte{byte(n)}, n)) != 1 {
		return nil, false
	}
	return data[:len(data)-n], true
}
