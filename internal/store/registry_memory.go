package store

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-doc-vault/models"
)

// memoryRegistry is an in-process [Registry] guarded by a mutex. It is the
// default backend for development and tests.
type memoryRegistry struct {
	mu      sync.RWMutex
	records map[string]models.DocumentRecord
}

// NewMemoryRegistry returns an empty in-memory [Registry].
func NewMemoryRegistry() Registry {
	return &memoryRegistry{records: make(map[string]models.DocumentRecord)}
}

func (m *memoryRegistry) Exists(ctx context.Context, contentHash string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.records[contentHash]
	return ok, nil
}

func (m *memoryRegistry) Record(ctx context.Context, record models.DocumentRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[record.ContentHash]; ok {
		return ErrAlreadyRegistered
	}
	m.records[record.ContentHash] = record
	return nil
}

func (m *memoryRegistry) Lookup(ctx context.Context, contentHash string) (models.DocumentRecord, error) {
	if err := ctx.Err(); err != nil {
		return models.DocumentRecord{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[contentHash]
	if !ok {
		return models.DocumentRecord{}, ErrDocumentNotFound
	}
	return rec, nil
}

func (m *memoryRegistry) List(ctx context.Context, filter models.DocumentFilter) ([]models.DocumentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	all := make([]models.DocumentRecord, 0, len(m.records))
	for _, rec := range m.records {
		all = append(all, rec)
	}
	m.mu.RUnlock()

	return filterRecords(all, filter), nil
}
