package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppBuildInfo(t *testing.T) {
	info := NewAppBuildInfo("1.4.0", "2026-10-01", "a1b2c3d")

	assert.Equal(t, "1.4.0", info.BuildVersion())
	assert.Equal(t, "2026-10-01", info.BuildDate())
	assert.Equal(t, "a1b2c3d", info.BuildCommit())
	assert.Equal(t, "version=1.4.0 date=2026-10-01 commit=a1b2c3d", info.String())
}

func TestDocumentFilter_HasCategory(t *testing.T) {
	assert.False(t, DocumentFilter{}.HasCategory())
	assert.False(t, DocumentFilter{Category: CategoryAll}.HasCategory())
	assert.True(t, DocumentFilter{Category: "contracts"}.HasCategory())
}

func TestNewUploadResult(t *testing.T) {
	rec := DocumentRecord{
		ContentHash: "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
		Locator:     "loc",
		IV:          "00112233445566778899aabbccddeeff",
		Filename:    "hello.txt",
		MimeType:    "text/plain",
		Category:    "notes",
	}

	res := NewUploadResult(rec, true)

	assert.Equal(t, rec.ContentHash, res.ContentHash)
	assert.Equal(t, rec.Locator, res.Locator)
	assert.Equal(t, rec.IV, res.IV)
	assert.Equal(t, rec.Filename, res.Filename)
	assert.Equal(t, rec.MimeType, res.MimeType)
	assert.Equal(t, rec.Category, res.Category)
	assert.True(t, res.Registered)
}
