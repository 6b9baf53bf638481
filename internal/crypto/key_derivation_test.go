package crypto

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroPadKeyDeriver_PadsShortPassword(t *testing.T) {
	key := NewZeroPadKeyDeriver().Derive("short")

	want := append([]byte("short"), make([]byte, 27)...)
	if !bytes.Equal(key, want) {
		t.Fatalf("Derive(short) = %x, want %x", key, want)
	}
}

func TestZeroPadKeyDeriver_TruncatesLongPassword(t *testing.T) {
	password := strings.Repeat("abcdefgh", 5) // 40 bytes

	key := NewZeroPadKeyDeriver().Derive(password)

	if len(key) != KeySize {
		t.Fatalf("key length = %d, want %d", len(key), KeySize)
	}
	if string(key) != password[:KeySize] {
		t.Fatalf("expected first 32 bytes of the password")
	}
}

func TestZeroPadKeyDeriver_ExactLength(t *testing.T) {
	password := strings.Repeat("k", KeySize)
	assert.Equal(t, []byte(password), NewZeroPadKeyDeriver().Derive(password))
}

func TestZeroPadKeyDeriver_EmptyPassword(t *testing.T) {
	assert.Equal(t, make([]byte, KeySize), NewZeroPadKeyDeriver().Derive(""))
}

func TestZeroPadKeyDeriver_UsesUTF8Bytes(t *testing.T) {
	key := NewZeroPadKeyDeriver().Derive("пароль")

	require.Len(t, key, KeySize)
	assert.Equal(t, []byte("пароль"), key[:len("пароль")])
}

func TestZeroPadKeyDeriver_Deterministic(t *testing.T) {
	d := NewZeroPadKeyDeriver()
	assert.Equal(t, d.Derive("Secr3t!"), d.Derive("Secr3t!"))
	assert.NotEqual(t, d.Derive("Secr3t!"), d.Derive("Secr3t?"))
	assert.Equal(t, SchemeZeroPad, d.Scheme())
}

func TestArgon2KeyDeriver_DeterministicForSameSalt(t *testing.T) {
	salt := bytes.Repeat([]byte{0xAB}, 16)

	k1 := NewArgon2KeyDeriver(salt).Derive("correct horse battery staple")
	k2 := NewArgon2KeyDeriver(salt).Derive("correct horse battery staple")

	require.Len(t, k1, KeySize)
	assert.Equal(t, k1, k2)
}

func TestArgon2KeyDeriver_DifferentSaltDifferentKey(t *testing.T) {
	k1 := NewArgon2KeyDeriver(bytes.Repeat([]byte{0x01}, 16)).Derive("same password")
	k2 := NewArgon2KeyDeriver(bytes.Repeat([]byte{0x02}, 16)).Derive("same password")

	assert.NotEqual(t, k1, k2)
}

func TestArgon2KeyDeriver_NotZeroPadded(t *testing.T) {
	d := NewArgon2KeyDeriver([]byte("deployment-salt"))

	assert.NotEqual(t, NewZeroPadKeyDeriver().Derive("short"), d.Derive("short"))
	assert.Equal(t, SchemeArgon2ID, d.Scheme())
}

func TestNewKeyDeriver(t *testing.T) {
	tests := []struct {
		name       string
		scheme     string
		salt       []byte
		wantScheme string
		wantErr    bool
	}{
		{name: "default", scheme: "", wantScheme: SchemeZeroPad},
		{name: "zeropad", scheme: SchemeZeroPad, wantScheme: SchemeZeroPad},
		{name: "argon2id", scheme: SchemeArgon2ID, salt: []byte("salt"), wantScheme: SchemeArgon2ID},
		{name: "argon2id without salt", scheme: SchemeArgon2ID, wantErr: true},
		{name: "unknown", scheme: "pbkdf2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewKeyDeriver(tt.scheme, tt.salt)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnknownScheme)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantScheme, d.Scheme())
		})
	}
}
