package store

import (
	"sort"
	"strings"

	"github.com/MKhiriev/go-doc-vault/models"
)

// filterRecords applies filter to records in memory, the way the SQL
// registry does in its WHERE clause. Used by the key-value backends.
func filterRecords(records []models.DocumentRecord, filter models.DocumentFilter) []models.DocumentRecord {
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	matched := make([]models.DocumentRecord, 0, len(records))
	for _, rec := range records {
		if filter.HasCategory() && !strings.EqualFold(rec.Category, filter.Category) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(rec.Filename), query) &&
			!strings.Contains(strings.ToLower(rec.ContentHash), query) &&
			!strings.Contains(strings.ToLower(rec.MimeType), query) {
			continue
		}
		matched = append(matched, rec)
	}

	// newest first, ties by hash for a stable order
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ContentHash < matched[j].ContentHash
	})

	if filter.Limit > 0 && uint64(len(matched)) > filter.Limit {
		matched = matched[:filter.Limit]
	}

	return matched
}
