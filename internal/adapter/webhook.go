package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-project-tracker/internal/config"
	"github.com/MKhiriev/go-project-tracker/internal/logger"
	"github.com/MKhiriev/go-project-tracker/models"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const (
	deliveryIDHeader = "X-Delivery-ID"

	webhookRetryCount   = 2
	webhookRetryWait    = 200 * time.Millisecond
	webhookRetryMaxWait = 2 * time.Second
)

// webhookPayload is the body posted to the receiver.
type webhookPayload struct {
	DeliveryID    string                `json:"delivery_id"`
	SentAt        time.Time             `json:"sent_at"`
	Notifications []models.Notification `json:"notifications"`
}

type webhookAdapter struct {
	client *resty.Client
	url    string

	logger *logger.Logger
}

// NewWebhookAdapter returns an adapter posting batches to
// cfg.NotificationWebhookURL. Transport errors and 5xx answers are retried;
// every attempt of one batch carries the same X-Delivery-ID so the receiver
// can drop duplicates.
func NewWebhookAdapter(cfg config.Adapter, logger *logger.Logger) (NotificationAdapter, error) {
	webhookURL, err := normalizeURL(cfg.NotificationWebhookURL)
	if err != nil {
		return nil, err
	}

	client := resty.New().
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(webhookRetryCount).
		SetRetryWaitTime(webhookRetryWait).
		SetRetryMaxWaitTime(webhookRetryMaxWait).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || resp.StatusCode() >= http.StatusInternalServerError
		})

	return &webhookAdapter{client: client, url: webhookURL, logger: logger}, nil
}

func normalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrNoWebhookURL
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid notification webhook url: %w", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid notification webhook url %q: host is empty", raw)
	}

	return u.String(), nil
}

func (a *webhookAdapter) Push(ctx context.Context, notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	payload := webhookPayload{
		DeliveryID:    uuid.NewString(),
		SentAt:        time.Now().UTC(),
		Notifications: notifications,
	}

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader(deliveryIDHeader, payload.DeliveryID).
		SetBody(payload).
		Post(a.url)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWebhookUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	a.logger.Debug().
		Str("delivery_id", payload.DeliveryID).
		Int("count", len(notifications)).
		Dur("duration", resp.Time()).
		Msg("notifications pushed")

	return nil
}
