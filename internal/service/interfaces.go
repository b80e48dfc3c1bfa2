package service

import (
	"context"

	"github.com/MKhiriev/go-project-tracker/models"
)

// EpicService manages the epic → story → task → subtask hierarchy.
//
// Create and update payloads are records as decoded from JSON after date
// coercion: ids may arrive as float64, dates as time.Time or nil. Keys that
// do not belong to the item's kind are ignored.
type EpicService interface {
	CreateEpic(ctx context.Context, actor models.Actor, payload map[string]any) (models.WorkItem, error)
	GetEpic(ctx context.Context, id int64) (models.WorkItem, error)
	UpdateEpic(ctx context.Context, actor models.Actor, id int64, payload map[string]any) (models.WorkItem, error)
	DeleteEpic(ctx context.Context, id int64) error

	CreateStory(ctx context.Context, actor models.Actor, payload map[string]any) (models.WorkItem, error)
	GetStory(ctx context.Context, id int64) (models.WorkItem, error)
	UpdateStory(ctx context.Context, actor models.Actor, id int64, payload map[string]any) (models.WorkItem, error)
	DeleteStory(ctx context.Context, id int64) error

	CreateTask(ctx context.Context, actor models.Actor, payload map[string]any) (models.WorkItem, error)
	GetTask(ctx context.Context, id int64) (models.WorkItem, error)
	UpdateTask(ctx context.Context, actor models.Actor, id int64, payload map[string]any) (models.WorkItem, error)
	DeleteTask(ctx context.Context, id int64) error

	CreateSubtask(ctx context.Context, actor models.Actor, payload map[string]any) (models.WorkItem, error)
	GetSubtask(ctx context.Context, id int64) (models.WorkItem, error)
	UpdateSubtask(ctx context.Context, actor models.Actor, id int64, payload map[string]any) (models.WorkItem, error)
	DeleteSubtask(ctx context.Context, id int64) error

	// ListEpics returns the epics matching filter. With includeChildren each
	// epic carries its stories.
	ListEpics(ctx context.Context, filter models.WorkItemFilter, includeChildren bool) ([]models.HierarchyNode, error)
	// GetEpicHierarchy returns the epic with every descendant, children
	// ordered by position.
	GetEpicHierarchy(ctx context.Context, id int64) (models.HierarchyNode, error)
	// GetStoryTasks returns the story's tasks in position order, each with
	// its subtasks when includeSubtasks is set.
	GetStoryTasks(ctx context.Context, storyID int64, includeSubtasks bool) ([]models.TaskWithSubtasks, error)
	// BulkUpdateTasks applies the same changes to every listed task, all or
	// nothing.
	BulkUpdateTasks(ctx context.Context, actor models.Actor, req models.BulkUpdateRequest) ([]models.WorkItem, error)
	// ReorderStories sets the story order of an epic. ids must list every
	// story of the epic exactly once.
	ReorderStories(ctx context.Context, epicID int64, ids []int64) ([]models.WorkItem, error)
	// MoveStoryToPhase fails with a 409 [ApplicationError] when the story's
	// epic is closed.
	MoveStoryToPhase(ctx context.Context, actor models.Actor, storyID, phaseID int64) (models.WorkItem, error)
}

// EpicServiceWrapper defines middleware composition for EpicService.
// Implementations wrap an existing EpicService to add behavior such as
// logging.
type EpicServiceWrapper interface {
	Wrap(EpicService) EpicService
}

type PhaseService interface {
	CreatePhase(ctx context.Context, phase models.Phase) (models.Phase, error)
	ListPhases(ctx context.Context) ([]models.Phase, error)
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, customer models.Customer) (models.Customer, error)
	GetCustomer(ctx context.Context, id int64) (models.Customer, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, payload map[string]any) (models.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

type TemplateService interface {
	CreateTemplate(ctx context.Context, actor models.Actor, template models.Template) (models.Template, error)
	GetTemplate(ctx context.Context, id int64) (models.Template, error)
	ListTemplates(ctx context.Context, kind models.EntityKind) ([]models.Template, error)
	// Instantiate creates a work item from the template payload with
	// overrides applied on top. The merged record goes through the same date
	// coercion and create schema as a direct create request.
	Instantiate(ctx context.Context, actor models.Actor, id int64, overrides map[string]any) (models.WorkItem, error)
}

type CommentService interface {
	AddComment(ctx context.Context, actor models.Actor, comment models.Comment) (models.Comment, error)
	ListComments(ctx context.Context, kind models.EntityKind, entityID int64) ([]models.Comment, error)
	// DeleteComment only lets the author remove a comment.
	DeleteComment(ctx context.Context, actor models.Actor, id int64) error
}

type NotificationService interface {
	// Notify stores a notification. Failures are logged and swallowed so the
	// triggering operation is not undone by them.
	Notify(ctx context.Context, notification models.Notification)
	ListNotifications(ctx context.Context, actor models.Actor, unreadOnly bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, actor models.Actor, id int64) error
	// Pending returns at most limit notifications not yet pushed to the
	// webhook.
	Pending(ctx context.Context, limit int) ([]models.Notification, error)
	MarkDelivered(ctx context.Context, ids []int64) error
}

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	// EnsureUser registers login with password unless the login is taken.
	EnsureUser(ctx context.Context, login, password string) error
}
