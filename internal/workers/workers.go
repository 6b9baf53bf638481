package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-doc-vault/internal/config"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/service"
)

type Workers struct {
	workers []Worker
	wg      sync.WaitGroup
}

// NewWorkers creates the background workers enabled by cfg.
func NewWorkers(services *service.Services, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}

	if cfg.RegistrationRetryInterval > 0 {
		w.workers = append(w.workers, NewRegistrationRetryWorker(services.VaultService, cfg, logger))
	} else {
		logger.Info().Msg("registration retry worker is disabled")
	}

	return w
}

// Run starts every worker in its own goroutine and returns immediately.
// Workers stop when ctx is cancelled; use Wait to block until they have.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			worker.Run(ctx)
		}()
	}
}

// Wait blocks until all started workers have returned.
func (w *Workers) Wait() {
	w.wg.Wait()
}
