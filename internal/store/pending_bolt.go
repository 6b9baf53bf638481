package store

import (
	"context"

	"github.com/MKhiriev/go-doc-vault/models"
	"go.etcd.io/bbolt"
)

// boltPendingStore is a durable [PendingRegistrationStore]. Pending records
// survive restarts so the retry worker can finish them later.
type boltPendingStore struct {
	db *bbolt.DB
}

// NewBoltPendingRegistrationStore returns a [PendingRegistrationStore] in the
// "pending_registrations" bucket of db.
func NewBoltPendingRegistrationStore(db *bbolt.DB) PendingRegistrationStore {
	return &boltPendingStore{db: db}
}

func (s *boltPendingStore) Add(ctx context.Context, record models.DocumentRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encodeRecord(record)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPending).Put([]byte(record.ContentHash), data)
	})
}

func (s *boltPendingStore) Get(ctx context.Context, contentHash string) (models.DocumentRecord, error) {
	if err := ctx.Err(); err != nil {
		return models.DocumentRecord{}, err
	}

	var rec models.DocumentRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketPending).Get([]byte(contentHash))
		if data == nil {
			return ErrPendingNotFound
		}
		return decodeRecord(data, &rec)
	})
	if err != nil {
		return models.DocumentRecord{}, err
	}
	return rec, nil
}

func (s *boltPendingStore) Remove(ctx context.Context, contentHash string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPending).Delete([]byte(contentHash))
	})
}

func (s *boltPendingStore) List(ctx context.Context) ([]models.DocumentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make([]models.DocumentRecord, 0)
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPending).ForEach(func(_, v []byte) error {
			var rec models.DocumentRecord
			if err := decodeRecord(v, &rec); err != nil {
				return err
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
