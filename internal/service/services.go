package service

import (
	"fmt"

	"github.com/MKhiriev/go-doc-vault/internal/config"
	"github.com/MKhiriev/go-doc-vault/internal/crypto"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/store"
	"github.com/MKhiriev/go-doc-vault/internal/validators"
	"github.com/MKhiriev/go-doc-vault/models"
)

type Services struct {
	VaultService   VaultService
	AppInfoService AppInfoService
}

// NewServices builds the configured key derivation and cipher schemes and
// wires them with the storages into a validated vault pipeline.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	keys, err := crypto.NewKeyDeriver(cfg.App.KeyScheme, []byte(cfg.App.KeySalt))
	if err != nil {
		return nil, fmt.Errorf("error creating key deriver: %w", err)
	}

	cipher, err := crypto.NewCipher(cfg.App.CipherScheme)
	if err != nil {
		return nil, fmt.Errorf("error creating cipher: %w", err)
	}

	appInfoService, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, err
	}

	vaultService := NewVaultService(keys, cipher, crypto.NewSHA256Hasher(), storages, logger)

	var validatorOpts []validators.DocumentValidatorOption
	if cfg.App.StrongPasswords {
		validatorOpts = append(validatorOpts, validators.WithPasswordPolicy())
	}

	logger.Info().
		Str("key_scheme", keys.Scheme()).
		Str("cipher_scheme", cipher.Scheme()).
		Bool("strong_passwords", cfg.App.StrongPasswords).
		Msg("vault pipeline created")

	return &Services{
		VaultService:   NewVaultValidationService(validatorOpts...).Wrap(vaultService),
		AppInfoService: appInfoService,
	}, nil
}
