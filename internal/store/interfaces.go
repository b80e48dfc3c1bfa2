package store

import (
	"context"

	"github.com/MKhiriev/go-project-tracker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// WorkItemRepository persists epics, stories, tasks and subtasks in a single
// table. Change maps passed to Update and BulkUpdate are keyed by column
// name and must only name columns listed in [WorkItemUpdatableColumns].
type WorkItemRepository interface {
	// Create stores item at the end of its parent's children and returns it
	// with ID, Position and timestamps filled.
	Create(ctx context.Context, item models.WorkItem) (models.WorkItem, error)
	Get(ctx context.Context, id int64) (models.WorkItem, error)
	List(ctx context.Context, filter models.WorkItemFilter) ([]models.WorkItem, error)
	Update(ctx context.Context, id int64, changes map[string]any) (models.WorkItem, error)
	// Delete removes the item; its descendants go with it.
	Delete(ctx context.Context, id int64) error
	// Reorder sets the position of every child of parentID to its index
	// in ids, atomically.
	Reorder(ctx context.Context, parentID int64, ids []int64) error
	// BulkUpdate applies changes to every item of kind in ids, atomically.
	// It fails with [ErrNotFound] unless every id matches.
	BulkUpdate(ctx context.Context, kind models.EntityKind, ids []int64, changes map[string]any) error
}

// PhaseRepository persists phases.
type PhaseRepository interface {
	Create(ctx context.Context, phase models.Phase) (models.Phase, error)
	Get(ctx context.Context, id int64) (models.Phase, error)
	List(ctx context.Context) ([]models.Phase, error)
}

// CustomerRepository persists customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer models.Customer) (models.Customer, error)
	Get(ctx context.Context, id int64) (models.Customer, error)
	List(ctx context.Context) ([]models.Customer, error)
	Update(ctx context.Context, id int64, changes map[string]any) (models.Customer, error)
	Delete(ctx context.Context, id int64) error
}

// TemplateRepository persists templates.
type TemplateRepository interface {
	Create(ctx context.Context, template models.Template) (models.Template, error)
	Get(ctx context.Context, id int64) (models.Template, error)
	// List returns every template, or only those of kind when it is set.
	List(ctx context.Context, kind models.EntityKind) ([]models.Template, error)
}

// CommentRepository persists comments.
type CommentRepository interface {
	Create(ctx context.Context, comment models.Comment) (models.Comment, error)
	Get(ctx context.Context, id int64) (models.Comment, error)
	ListByEntity(ctx context.Context, kind models.EntityKind, entityID int64) ([]models.Comment, error)
	Delete(ctx context.Context, id int64) error
}

// NotificationRepository persists notifications and their delivery state.
type NotificationRepository interface {
	Create(ctx context.Context, notification models.Notification) (models.Notification, error)
	ListByUser(ctx context.Context, userID int64, unreadOnly bool) ([]models.Notification, error)
	// MarkRead fails with [ErrNotFound] when id does not belong to userID.
	MarkRead(ctx context.Context, id, userID int64) error
	// ListUndelivered returns at most limit notifications not yet pushed
	// to the webhook, oldest first.
	ListUndelivered(ctx context.Context, limit uint64) ([]models.Notification, error)
	MarkDelivered(ctx context.Context, ids []int64) error
}
