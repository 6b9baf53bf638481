// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or every violation joined into
// one error otherwise.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	switch cfg.Storage.Blob.Backend {
	case BackendMemory:
	case BackendFile:
		if cfg.Storage.Blob.Dir == "" {
			errs = append(errs, fmt.Errorf("%w: file backend requires a directory", ErrInvalidStorageConfigs))
		}
	case BackendIPFS:
		if cfg.Storage.Blob.IPFSAddress == "" {
			errs = append(errs, fmt.Errorf("%w: ipfs backend requires an address", ErrInvalidStorageConfigs))
		}
	default:
		errs = append(errs, fmt.Errorf("%w: unknown blob backend %q", ErrInvalidStorageConfigs, cfg.Storage.Blob.Backend))
	}

	switch cfg.Storage.Registry.Backend {
	case BackendMemory:
	case BackendPostgres, BackendSQLite, BackendBolt:
		if cfg.Storage.Registry.DSN == "" {
			errs = append(errs, fmt.Errorf("%w: %s registry requires a DSN", ErrInvalidStorageConfigs, cfg.Storage.Registry.Backend))
		}
	case BackendMongo:
		if cfg.Storage.Registry.DSN == "" || cfg.Storage.Registry.Database == "" {
			errs = append(errs, fmt.Errorf("%w: mongo registry requires a URI and a database", ErrInvalidStorageConfigs))
		}
	default:
		errs = append(errs, fmt.Errorf("%w: unknown registry backend %q", ErrInvalidStorageConfigs, cfg.Storage.Registry.Backend))
	}

	if cfg.App.KeyScheme == "argon2id" && cfg.App.KeySalt == "" {
		errs = append(errs, fmt.Errorf("%w: argon2id requires a key salt", ErrInvalidAppConfigs))
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 || cfg.Server.MaxUploadSize <= 0 {
		errs = append(errs, ErrInvalidServerConfigs)
	}

	if cfg.Workers.RegistrationRetryInterval > 0 && cfg.Workers.RegistrationMaxRetries == 0 {
		errs = append(errs, ErrInvalidWorkerConfigs)
	}

	return errors.Join(errs...)
}
