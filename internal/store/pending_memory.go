package store

import (
	"context"
	"sort"
	"sync"

	"github.com/MKhiriev/go-doc-vault/models"
)

type memoryPendingStore struct {
	mu      sync.Mutex
	records map[string]models.DocumentRecord
}

// NewMemoryPendingRegistrationStore returns a process-local
// [PendingRegistrationStore]. Pending records are lost on restart.
func NewMemoryPendingRegistrationStore() PendingRegistrationStore {
	return &memoryPendingStore{records: make(map[string]models.DocumentRecord)}
}

func (s *memoryPendingStore) Add(ctx context.Context, record models.DocumentRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ContentHash] = record
	return nil
}

func (s *memoryPendingStore) Get(ctx context.Context, contentHash string) (models.DocumentRecord, error) {
	if err := ctx.Err(); err != nil {
		return models.DocumentRecord{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[contentHash]
	if !ok {
		return models.DocumentRecord{}, ErrPendingNotFound
	}
	return rec, nil
}

func (s *memoryPendingStore) Remove(ctx context.Context, contentHash string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, contentHash)
	return nil
}

func (s *memoryPendingStore) List(ctx context.Context) ([]models.DocumentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	records := make([]models.DocumentRecord, 0, len(s.records))
	for _, rec := range s.records {
		records = append(records, rec)
	}
	s.mu.Unlock()

	sort.Slice(records, func(i, j int) bool { return records[i].ContentHash < records[j].ContentHash })
	return records, nil
}
