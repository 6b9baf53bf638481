// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-doc-vault/internal/config"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/service"
	"github.com/cenkalti/backoff/v4"
)

// RegistrationRetryWorker periodically completes registrations that were
// left in the pending-registration outbox by partial uploads.
type RegistrationRetryWorker struct {
	vault      service.VaultService
	interval   time.Duration
	maxRetries uint64

	newBackOff func() backoff.BackOff

	logger *logger.Logger
}

func NewRegistrationRetryWorker(vault service.VaultService, cfg config.Workers, logger *logger.Logger) *RegistrationRetryWorker {
	return &RegistrationRetryWorker{
		vault:      vault,
		interval:   cfg.RegistrationRetryInterval,
		maxRetries: cfg.RegistrationMaxRetries,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = time.Second
			b.MaxElapsedTime = cfg.RegistrationRetryInterval
			return b
		},
		logger: logger.GetChildLogger(),
	}
}

func (w *RegistrationRetryWorker) Run(ctx context.Context) {
	w.logger.Info().Dur("interval", w.interval).Msg("registration retry worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("registration retry worker stopped")
			return
		case <-ticker.C:
			w.retryPending(ctx)
		}
	}
}

// retryPending tries every pending registration once, with backoff between
// attempts on registry unavailability. It returns how many were completed.
func (w *RegistrationRetryWorker) retryPending(ctx context.Context) int {
	records, err := w.vault.PendingRegistrations(ctx)
	if err != nil {
		w.logger.Err(err).Msg("failed to list pending registrations")
		return 0
	}

	completed := 0
	for _, record := range records {
		if ctx.Err() != nil {
			break
		}

		log := w.logger.With().Str("content_hash", record.ContentHash).Logger()

		operation := func() error {
			_, err := w.vault.CompleteRegistration(ctx, record.ContentHash)
			if err == nil || errors.Is(err, service.ErrRegistryUnavailable) {
				return err
			}
			return backoff.Permanent(err)
		}

		policy := backoff.WithContext(backoff.WithMaxRetries(w.newBackOff(), w.maxRetries), ctx)
		err := backoff.Retry(operation, policy)

		switch {
		case err == nil:
			completed++
			log.Info().Msg("pending registration completed")
		case errors.Is(err, service.ErrDuplicateDocument):
			log.Warn().Msg("pending registration dropped, document registered elsewhere")
		default:
			log.Err(err).Msg("pending registration still incomplete")
		}
	}

	return completed
}
