package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-project-tracker/internal/adapter"
	"github.com/MKhiriev/go-project-tracker/internal/config"
	"github.com/MKhiriev/go-project-tracker/internal/logger"
	"github.com/MKhiriev/go-project-tracker/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the background workers. Without a webhook adapter the
// notification dispatcher is left out and notifications stay in-app only.
func NewWorkers(services *service.Services, notifier adapter.NotificationAdapter, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}

	if notifier != nil {
		w.workers = append(w.workers, newNotificationDispatcher(services.NotificationService, notifier, cfg, logger))
	}

	logger.Info().Int("count", len(w.workers)).Msg("workers created")
	return w
}

// Run starts every worker and blocks until all of them have returned, which
// happens once ctx is cancelled.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Go(func() { worker.Run(ctx) })
	}
	wg.Wait()
}
