package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/models"
	"github.com/jackc/pgerrcode"
)

// sqlRegistry is the database/sql implementation of [Registry]. It serves
// both PostgreSQL and SQLite; queries are built with squirrel in the
// placeholder format of the connection dialect.
type sqlRegistry struct {
	db *DB
}

// NewSQLRegistry constructs a [Registry] backed by db. The schema must be
// migrated beforehand with [DB.Migrate].
func NewSQLRegistry(db *DB) Registry {
	db.logger.Debug().Str("dialect", string(db.dialect)).Msg("creating sql registry")
	return &sqlRegistry{db: db}
}

// Exists implements [Registry].
func (r *sqlRegistry) Exists(ctx context.Context, contentHash string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildExistsQuery(r.db.builder(), contentHash)
	if err != nil {
		return false, err
	}

	var count int64
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "sqlRegistry.Exists").
			Str("content_hash", contentHash).
			Bool("retryable", r.db.retryable(err)).
			Msg("failed to check document existence")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count > 0, nil
}

// Record implements [Registry].
func (r *sqlRegistry) Record(ctx context.Context, record models.DocumentRecord) error {
	log := logger.FromContext(ctx)

	query, args, err := buildRecordQuery(r.db.builder(), record)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return ErrAlreadyRegistered
		}
		log.Err(err).
			Str("func", "sqlRegistry.Record").
			Str("content_hash", record.ContentHash).
			Bool("retryable", r.db.retryable(err)).
			Msg("failed to insert document record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrAlreadyRegistered
	}

	return nil
}

// Lookup implements [Registry].
func (r *sqlRegistry) Lookup(ctx context.Context, contentHash string) (models.DocumentRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildLookupQuery(r.db.builder(), contentHash)
	if err != nil {
		return models.DocumentRecord{}, err
	}

	rec, err := scanDocument(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.DocumentRecord{}, ErrDocumentNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "sqlRegistry.Lookup").
			Str("content_hash", contentHash).
			Bool("retryable", r.db.retryable(err)).
			Msg("failed to look up document")
		return models.DocumentRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return rec, nil
}

// List implements [Registry].
func (r *sqlRegistry) List(ctx context.Context, filter models.DocumentFilter) ([]models.DocumentRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListQuery(r.db.builder(), filter)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sqlRegistry.List").
			Str("category", filter.Category).
			Bool("retryable", r.db.retryable(err)).
			Msg("failed to execute query for listing documents")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.DocumentRecord, 0, 50)
	for rows.Next() {
		rec, scanErr := scanDocument(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "sqlRegistry.List").Msg("failed to scan document row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		records = append(records, rec)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "sqlRegistry.List").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (models.DocumentRecord, error) {
	var rec models.DocumentRecord
	err := row.Scan(
		&rec.ContentHash,
		&rec.Locator,
		&rec.IV,
		&rec.Filename,
		&rec.MimeType,
		&rec.Category,
		&rec.KeyScheme,
		&rec.CipherScheme,
		&rec.CreatedAt,
	)
	return rec, err
}
