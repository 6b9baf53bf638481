package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingRegistrationStore(t *testing.T) {
	db, err := OpenBolt(filepath.Join(t.TempDir(), "outbox.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	stores := map[string]PendingRegistrationStore{
		"memory": NewMemoryPendingRegistrationStore(),
		"bolt":   NewBoltPendingRegistrationStore(db),
	}

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			rec := testRecord()

			_, err := s.Get(ctx, rec.ContentHash)
			assert.ErrorIs(t, err, ErrPendingNotFound)

			require.NoError(t, s.Add(ctx, rec))
			// adding twice keeps a single entry
			require.NoError(t, s.Add(ctx, rec))

			got, err := s.Get(ctx, rec.ContentHash)
			require.NoError(t, err)
			assert.Equal(t, rec, got)

			all, err := s.List(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 1)

			require.NoError(t, s.Remove(ctx, rec.ContentHash))
			// removing a missing entry is not an error
			require.NoError(t, s.Remove(ctx, rec.ContentHash))

			all, err = s.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestBoltPendingStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outbox.db")
	rec := testRecord()

	db, err := OpenBolt(path)
	require.NoError(t, err)
	require.NoError(t, NewBoltPendingRegistrationStore(db).Add(context.Background(), rec))
	require.NoError(t, db.Close())

	db, err = OpenBolt(path)
	require.NoError(t, err)
	defer db.Close()

	got, err := NewBoltPendingRegistrationStore(db).Get(context.Background(), rec.ContentHash)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}
