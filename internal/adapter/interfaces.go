package adapter

import (
	"context"

	"github.com/MKhiriev/go-project-tracker/models"
)

// NotificationAdapter pushes stored notifications to an external receiver.
type NotificationAdapter interface {
	// Push delivers one batch. A nil error means the receiver accepted every
	// notification in it.
	Push(ctx context.Context, notifications []models.Notification) error
}
