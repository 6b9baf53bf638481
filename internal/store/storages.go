package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-doc-vault/internal/config"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/utils"
	"go.etcd.io/bbolt"
)

// Storages bundles the collaborators of the vault pipeline together with the
// resources that must be released on shutdown.
type Storages struct {
	BlobStore            BlobStore
	Registry             Registry
	PendingRegistrations PendingRegistrationStore

	closers []func() error
}

// StoragesOption customises [NewStorages].
type StoragesOption func(*Storages)

// WithBlobStore installs a blob store built outside this package (e.g. the
// IPFS adapter). It takes precedence over cfg.Blob.Backend.
func WithBlobStore(blobStore BlobStore) StoragesOption {
	return func(s *Storages) {
		s.BlobStore = blobStore
	}
}

// NewStorages opens the backends selected by cfg. On error every resource
// opened so far is closed.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger, opts ...StoragesOption) (*Storages, error) {
	s := &Storages{}
	for _, opt := range opts {
		opt(s)
	}

	bolts := make(map[string]*bbolt.DB)
	openBolt := func(path string) (*bbolt.DB, error) {
		if db, ok := bolts[path]; ok {
			return db, nil
		}
		db, err := OpenBolt(path)
		if err != nil {
			return nil, err
		}
		bolts[path] = db
		s.closers = append(s.closers, db.Close)
		return db, nil
	}

	if err := s.initBlobStore(cfg.Blob); err != nil {
		return nil, errors.Join(err, s.Close())
	}
	if err := s.initRegistry(ctx, cfg.Registry, log, openBolt); err != nil {
		return nil, errors.Join(err, s.Close())
	}

	if cfg.Outbox.Path == "" {
		s.PendingRegistrations = NewMemoryPendingRegistrationStore()
	} else {
		db, err := openBolt(cfg.Outbox.Path)
		if err != nil {
			return nil, errors.Join(err, s.Close())
		}
		s.PendingRegistrations = NewBoltPendingRegistrationStore(db)
	}

	log.Info().
		Str("blob_backend", cfg.Blob.Backend).
		Str("registry_backend", cfg.Registry.Backend).
		Bool("durable_outbox", cfg.Outbox.Path != "").
		Msg("storages initialised")

	return s, nil
}

func (s *Storages) initBlobStore(cfg config.Blob) error {
	if s.BlobStore != nil {
		return nil
	}

	switch cfg.Backend {
	case "", config.BackendMemory:
		s.BlobStore = NewMemoryBlobStore(utils.NewUUIDGenerator())
	case config.BackendFile:
		blobStore, err := NewFileBlobStore(cfg.Dir)
		if err != nil {
			return err
		}
		s.BlobStore = blobStore
	default:
		return fmt.Errorf("%w: blob backend %q", ErrUnsupportedBackend, cfg.Backend)
	}
	return nil
}

func (s *Storages) initRegistry(
	ctx context.Context,
	cfg config.Registry,
	log *logger.Logger,
	openBolt func(string) (*bbolt.DB, error),
) error {
	switch cfg.Backend {
	case "", config.BackendMemory:
		s.Registry = NewMemoryRegistry()

	case config.BackendPostgres, config.BackendSQLite:
		connect := NewConnectPostgres
		if cfg.Backend == config.BackendSQLite {
			connect = NewConnectSQLite
		}
		db, err := connect(ctx, cfg.DSN, log)
		if err != nil {
			return err
		}
		s.closers = append(s.closers, db.Close)
		if err = db.Migrate(); err != nil {
			return err
		}
		s.Registry = NewSQLRegistry(db)

	case config.BackendMongo:
		client, err := NewConnectMongo(ctx, cfg.DSN, log)
		if err != nil {
			return err
		}
		s.closers = append(s.closers, func() error { return client.Disconnect(context.Background()) })
		registry, err := NewMongoRegistry(ctx, client, cfg.Database)
		if err != nil {
			return err
		}
		s.Registry = registry

	case config.BackendBolt:
		db, err := openBolt(cfg.DSN)
		if err != nil {
			return err
		}
		s.Registry = NewBoltRegistry(db)

	default:
		return fmt.Errorf("%w: registry backend %q", ErrUnsupportedBackend, cfg.Backend)
	}
	return nil
}

// Close releases every opened backend, newest first.
func (s *Storages) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
