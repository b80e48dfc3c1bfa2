package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-project-tracker/internal/logger"
	"github.com/MKhiriev/go-project-tracker/models"
	sq "github.com/Masterminds/squirrel"
)

type commentRepository struct {
	*DB
}

// NewCommentRepository constructs a [CommentRepository] on db.
func NewCommentRepository(db *DB) CommentRepository {
	return &commentRepository{DB: db}
}

func (r *commentRepository) Create(ctx context.Context, comment models.Comment) (models.Comment, error) {
	comment.CreatedAt = time.Now().UTC()

	query, args, err := buildInsertCommentQuery(r.builder, comment)
	if err != nil {
		return models.Comment{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := r.QueryRowContext(ctx, query, args...).Scan(&comment.ID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*commentRepository.Create").Msg("failed to insert comment")
		return models.Comment{}, r.execError(err)
	}

	return comment, nil
}

func (r *commentRepository) Get(ctx context.Context, id int64) (models.Comment, error) {
	comments, err := r.list(ctx, sq.Eq{"id": id})
	if err != nil {
		return models.Comment{}, err
	}
	if len(comments) == 0 {
		return models.Comment{}, ErrNotFound
	}
	return comments[0], nil
}

func (r *commentRepository) ListByEntity(ctx context.Context, kind models.EntityKind, entityID int64) ([]models.Comment, error) {
	return r.list(ctx, sq.Eq{"entity_kind": string(kind), "entity_id": entityID})
}

func (r *commentRepository) list(ctx context.Context, where sq.Eq) ([]models.Comment, error) {
	query, args, err := buildSelectCommentsQuery(r.builder, where)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return queryAll(ctx, r.DB, "*commentRepository.list", query, args, func(row rowScanner) (models.Comment, error) {
		var c models.Comment
		err := row.Scan(&c.ID, &c.EntityKind, &c.EntityID, &c.AuthorID, &c.Body, &c.CreatedAt)
		return c, err
	})
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := buildDeleteByIDQuery(r.builder, tableComments, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return execOne(ctx, r.DB, "*commentRepository.Delete", query, args)
}

type notificationRepository struct {
	*DB
}

// NewNotificationRepository constructs a [NotificationRepository] on db.
func NewNotificationRepository(db *DB) NotificationRepository {
	return &notificationRepository{DB: db}
}

func (r *notificationRepository) Create(ctx context.Context, n models.Notification) (models.Notification, error) {
	n.CreatedAt = time.Now().UTC()

	query, args, err := buildInsertNotificationQuery(r.builder, n)
	if err != nil {
		return models.Notification{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := r.QueryRowContext(ctx, query, args...).Scan(&n.ID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*notificationRepository.Create").Int64("user_id", n.UserID).Msg("failed to insert notification")
		return models.Notification{}, r.execError(err)
	}

	return n, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int64, unreadOnly bool) ([]models.Notification, error) {
	query, args, err := buildSelectNotificationsQuery(r.builder, userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return queryAll(ctx, r.DB, "*notificationRepository.ListByUser", query, args, scanNotification)
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	query, args, err := buildMarkNotificationsQuery(r.builder, "read", sq.Eq{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return execOne(ctx, r.DB, "*notificationRepository.MarkRead", query, args)
}

func (r *notificationRepository) ListUndelivered(ctx context.Context, limit uint64) ([]models.Notification, error) {
	query, args, err := buildSelectUndeliveredQuery(r.builder, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return queryAll(ctx, r.DB, "*notificationRepository.ListUndelivered", query, args, scanNotification)
}

func (r *notificationRepository) MarkDelivered(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := buildMarkNotificationsQuery(r.builder, "delivered", sq.Eq{"id": ids})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*notificationRepository.MarkDelivered").Int("count", len(ids)).Msg("failed to mark notifications delivered")
		return r.execError(err)
	}

	return nil
}

func scanNotification(row rowScanner) (models.Notification, error) {
	var n models.Notification
	err := row.Scan(&n.ID, &n.UserID, &n.Kind, &n.EntityKind, &n.EntityID, &n.Message, &n.Read, &n.Delivered, &n.CreatedAt)
	return n, err
}
