package store

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-doc-vault/models"
	sq "github.com/Masterminds/squirrel"
)

const documentsTable = "documents"

var documentColumns = []string{
	"content_hash",
	"locator",
	"iv",
	"filename",
	"mime_type",
	"category",
	"key_scheme",
	"cipher_scheme",
	"created_at",
}

// likeEscaper escapes LIKE wildcards in user supplied search text.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func buildExistsQuery(b sq.StatementBuilderType, contentHash string) (string, []any, error) {
	query, args, err := b.Select("COUNT(1)").
		From(documentsTable).
		Where(sq.Eq{"content_hash": contentHash}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildRecordQuery builds an insert-if-absent statement. Zero affected rows
// means the content hash was already registered.
func buildRecordQuery(b sq.StatementBuilderType, rec models.DocumentRecord) (string, []any, error) {
	query, args, err := b.Insert(documentsTable).
		Columns(documentColumns...).
		Values(
			rec.ContentHash,
			rec.Locator,
			rec.IV,
			rec.Filename,
			rec.MimeType,
			rec.Category,
			rec.KeyScheme,
			rec.CipherScheme,
			rec.CreatedAt,
		).
		Suffix("ON CONFLICT (content_hash) DO NOTHING").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildLookupQuery(b sq.StatementBuilderType, contentHash string) (string, []any, error) {
	query, args, err := b.Select(documentColumns...).
		From(documentsTable).
		Where(sq.Eq{"content_hash": contentHash}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildListQuery(b sq.StatementBuilderType, filter models.DocumentFilter) (string, []any, error) {
	builder := b.Select(documentColumns...).
		From(documentsTable).
		OrderBy("created_at DESC", "content_hash")

	if filter.HasCategory() {
		builder = builder.Where("LOWER(category) = ?", strings.ToLower(filter.Category))
	}

	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
		builder = builder.Where(sq.Or{
			sq.Expr(`LOWER(filename) LIKE ? ESCAPE '\'`, pattern),
			sq.Expr(`LOWER(content_hash) LIKE ? ESCAPE '\'`, pattern),
			sq.Expr(`LOWER(mime_type) LIKE ? ESCAPE '\'`, pattern),
		})
	}

	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
