package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-project-tracker/internal/adapter"
	"github.com/MKhiriev/go-project-tracker/internal/config"
	"github.com/MKhiriev/go-project-tracker/internal/logger"
	"github.com/MKhiriev/go-project-tracker/internal/service"
	"github.com/MKhiriev/go-project-tracker/models"
)

// notificationDispatcher pushes undelivered notifications to the webhook on
// every tick and marks the accepted ones delivered.
type notificationDispatcher struct {
	notifications service.NotificationService
	notifier      adapter.NotificationAdapter

	interval  time.Duration
	batchSize int

	logger *logger.Logger
}

func newNotificationDispatcher(notifications service.NotificationService, notifier adapter.NotificationAdapter, cfg config.Workers, logger *logger.Logger) *notificationDispatcher {
	return &notificationDispatcher{
		notifications: notifications,
		notifier:      notifier,
		interval:      cfg.NotificationInterval,
		batchSize:     cfg.NotificationBatchSize,
		logger:        logger,
	}
}

func (d *notificationDispatcher) Run(ctx context.Context) {
	d.logger.Info().Dur("interval", d.interval).Msg("notification dispatcher started")

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info().Msg("notification dispatcher stopped")
			return
		case <-ticker.C:
			delivered, err := d.dispatch(ctx)
			if err != nil {
				d.logger.Err(err).Int("delivered", delivered).Msg("notification dispatch failed")
				continue
			}
			if delivered > 0 {
				d.logger.Debug().Int("delivered", delivered).Msg("notifications dispatched")
			}
		}
	}
}

// dispatch drains pending notifications batch by batch. It stops at the
// first failure; the failed batch stays pending for the next tick.
func (d *notificationDispatcher) dispatch(ctx context.Context) (int, error) {
	delivered := 0

	for ctx.Err() == nil {
		pending, err := d.notifications.Pending(ctx, d.batchSize)
		if err != nil {
			return delivered, fmt.Errorf("loading pending notifications: %w", err)
		}
		if len(pending) == 0 {
			return delivered, nil
		}

		if err = d.notifier.Push(ctx, pending); err != nil {
			return delivered, fmt.Errorf("pushing %d notifications: %w", len(pending), err)
		}

		if err = d.notifications.MarkDelivered(ctx, notificationIDs(pending)); err != nil {
			return delivered, fmt.Errorf("marking notifications delivered: %w", err)
		}
		delivered += len(pending)

		if len(pending) < d.batchSize {
			return delivered, nil
		}
	}

	return delivered, ctx.Err()
}

func notificationIDs(notifications []models.Notification) []int64 {
	ids := make([]int64, len(notifications))
	for i, n := range notifications {
		ids[i] = n.ID
	}
	return ids
}
