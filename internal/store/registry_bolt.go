package store

import (
	"context"

	"github.com/MKhiriev/go-doc-vault/models"
	"go.etcd.io/bbolt"
)

// boltRegistry persists records in the "documents" bucket of a bbolt file,
// keyed by content hash. bbolt serialises write transactions, so the
// existence check and the put in Record are atomic.
type boltRegistry struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Registry = (*boltRegistry)(nil)

// NewBoltRegistry returns a [Registry] backed by db. db must have been opened
// with [OpenBolt].
func NewBoltRegistry(db *bbolt.DB) Registry {
	return &boltRegistry{db: db}
}

func (r *boltRegistry) Exists(ctx context.Context, contentHash string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var found bool
	err := r.db.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket(bucketDocuments).Get([]byte(contentHash)) != nil
		return nil
	})
	return found, err
}

func (r *boltRegistry) Record(ctx context.Context, record models.DocumentRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encodeRecord(record)
	if err != nil {
		return err
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketDocuments)
		if b.Get([]byte(record.ContentHash)) != nil {
			return ErrAlreadyRegistered
		}
		return b.Put([]byte(record.ContentHash), data)
	})
}

func (r *boltRegistry) Lookup(ctx context.Context, contentHash string) (models.DocumentRecord, error) {
	if err := ctx.Err(); err != nil {
		return models.DocumentRecord{}, err
	}

	var rec models.DocumentRecord
	err := r.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDocuments).Get([]byte(contentHash))
		if data == nil {
			return ErrDocumentNotFound
		}
		return decodeRecord(data, &rec)
	})
	if err != nil {
		return models.DocumentRecord{}, err
	}
	return rec, nil
}

func (r *boltRegistry) List(ctx context.Context, filter models.DocumentFilter) ([]models.DocumentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var all []models.DocumentRecord
	err := r.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDocuments).ForEach(func(_, v []byte) error {
			var rec models.DocumentRecord
			if err := decodeRecord(v, &rec); err != nil {
				return err
			}
			all = append(all, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return filterRecords(all, filter), nil
}
