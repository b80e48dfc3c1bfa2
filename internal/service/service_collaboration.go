package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-project-tracker/internal/logger"
	"github.com/MKhiriev/go-project-tracker/internal/store"
	"github.com/MKhiriev/go-project-tracker/models"
)

const defaultPendingLimit = 50

type commentService struct {
	comments      store.CommentRepository
	workItems     store.WorkItemRepository
	customers     store.CustomerRepository
	notifications NotificationService
	logger        *logger.Logger
}

func NewCommentService(
	comments store.CommentRepository,
	workItems store.WorkItemRepository,
	customers store.CustomerRepository,
	notifications NotificationService,
	logger *logger.Logger,
) CommentService {
	return &commentService{
		comments:      comments,
		workItems:     workItems,
		customers:     customers,
		notifications: notifications,
		logger:        logger,
	}
}

// AddComment stores the comment and tells the commented item's assignee,
// unless the assignee wrote it.
func (s *commentService) AddComment(ctx context.Context, actor models.Actor, comment models.Comment) (models.Comment, error) {
	if actor.UserID <= 0 {
		return models.Comment{}, ErrActorRequired
	}

	comment.Body = strings.TrimSpace(comment.Body)
	if comment.Body == "" {
		return models.Comment{}, fmt.Errorf("%w: comment body is required", ErrInvalidInput)
	}

	target, err := s.commentTarget(ctx, comment.EntityKind, comment.EntityID)
	if err != nil {
		return models.Comment{}, err
	}

	comment.AuthorID = actor.UserID
	created, err := s.comments.Create(ctx, comment)
	if err != nil {
		return models.Comment{}, mapStoreError(err, "comment")
	}

	if target != nil && target.AssigneeID != nil && *target.AssigneeID != actor.UserID {
		s.notifications.Notify(ctx, models.Notification{
			UserID:     *target.AssigneeID,
			Kind:       models.NotificationCommentAdded,
			EntityKind: target.Kind,
			EntityID:   target.ID,
			Message:    fmt.Sprintf("%s commented on %s %q", actorName(actor), target.Kind, target.Title),
		})
	}

	return created, nil
}

// commentTarget checks the commented entity exists. The work item is
// returned so its assignee can be notified; customers have none.
func (s *commentService) commentTarget(ctx context.Context, kind models.EntityKind, id int64) (*models.WorkItem, error) {
	what := fmt.Sprintf("%s %d", kind, id)

	switch {
	case kind.IsWorkItem():
		item, err := s.workItems.Get(ctx, id)
		if err != nil {
			return nil, mapStoreError(err, what)
		}
		if item.Kind != kind {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, what)
		}
		return &item, nil

	case kind == models.KindCustomer:
		if _, err := s.customers.Get(ctx, id); err != nil {
			return nil, mapStoreError(err, what)
		}
		return nil, nil
	}

	return nil, fmt.Errorf("%w: %q entities cannot be commented on", ErrInvalidInput, kind)
}

func (s *commentService) ListComments(ctx context.Context, kind models.EntityKind, entityID int64) ([]models.Comment, error) {
	comments, err := s.comments.ListByEntity(ctx, kind, entityID)
	return comments, mapStoreError(err, "comments")
}

func (s *commentService) DeleteComment(ctx context.Context, actor models.Actor, id int64) error {
	comment, err := s.comments.Get(ctx, id)
	if err != nil {
		return mapStoreError(err, fmt.Sprintf("comment %d", id))
	}
	if comment.AuthorID != actor.UserID {
		return NewApplicationError(http.StatusForbidden, "only the author can delete a comment")
	}

	return mapStoreError(s.comments.Delete(ctx, id), fmt.Sprintf("comment %d", id))
}

func actorName(actor models.Actor) string {
	if actor.Login != "" {
		return actor.Login
	}
	return fmt.Sprintf("user %d", actor.UserID)
}

type notificationService struct {
	notifications store.NotificationRepository
	logger        *logger.Logger
}

func NewNotificationService(notifications store.NotificationRepository, logger *logger.Logger) NotificationService {
	return &notificationService{notifications: notifications, logger: logger}
}

func (s *notificationService) Notify(ctx context.Context, notification models.Notification) {
	if _, err := s.notifications.Create(ctx, notification); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*notificationService.Notify").
			Int64("user_id", notification.UserID).
			Str("kind", string(notification.Kind)).
			Msg("failed to store notification")
	}
}

func (s *notificationService) ListNotifications(ctx context.Context, actor models.Actor, unreadOnly bool) ([]models.Notification, error) {
	if actor.UserID <= 0 {
		return nil, ErrActorRequired
	}

	notifications, err := s.notifications.ListByUser(ctx, actor.UserID, unreadOnly)
	return notifications, mapStoreError(err, "notifications")
}

func (s *notificationService) MarkRead(ctx context.Context, actor models.Actor, id int64) error {
	if actor.UserID <= 0 {
		return ErrActorRequired
	}
	return mapStoreError(s.notifications.MarkRead(ctx, id, actor.UserID), fmt.Sprintf("notification %d", id))
}

func (s *notificationService) Pending(ctx context.Context, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = defaultPendingLimit
	}

	pending, err := s.notifications.ListUndelivered(ctx, uint64(limit))
	return pending, mapStoreError(err, "notifications")
}

func (s *notificationService) MarkDelivered(ctx context.Context, ids []int64) error {
	return mapStoreError(s.notifications.MarkDelivered(ctx, ids), "notifications")
}
