package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-project-tracker/internal/logger"
	"github.com/MKhiriev/go-project-tracker/models"
)

// workItemRepository is the SQL-backed implementation of
// [WorkItemRepository] over the "work_items" table.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so database failures are traced with the request's
// trace id.
type workItemRepository struct {
	*DB
}

// NewWorkItemRepository constructs a [WorkItemRepository] on db.
func NewWorkItemRepository(db *DB) WorkItemRepository {
	return &workItemRepository{DB: db}
}

func (r *workItemRepository) Create(ctx context.Context, item models.WorkItem) (models.WorkItem, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	item.CreatedAt, item.UpdatedAt = now, now

	err := r.withTx(ctx, func(tx *sql.Tx) error {
		posQuery, posArgs, err := buildNextPositionQuery(r.builder, item.Kind, item.ParentID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if err := tx.QueryRowContext(ctx, posQuery, posArgs...).Scan(&item.Position); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		query, args, err := buildInsertWorkItemQuery(r.builder, item)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&item.ID); err != nil {
			return r.execError(err)
		}

		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "*workItemRepository.Create").
			Str("kind", string(item.Kind)).
			Msg("failed to insert work item")
		return models.WorkItem{}, err
	}

	return item, nil
}

func (r *workItemRepository) Get(ctx context.Context, id int64) (models.WorkItem, error) {
	items, err := r.list(ctx, r.DB, models.WorkItemFilter{IDs: []int64{id}})
	if err != nil {
		return models.WorkItem{}, err
	}
	if len(items) == 0 {
		return models.WorkItem{}, ErrNotFound
	}
	return items[0], nil
}

func (r *workItemRepository) List(ctx context.Context, filter models.WorkItemFilter) ([]models.WorkItem, error) {
	return r.list(ctx, r.DB, filter)
}

func (r *workItemRepository) list(ctx context.Context, q queryer, filter models.WorkItemFilter) ([]models.WorkItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectWorkItemsQuery(r.builder, filter)
	if err != nil {
		log.Err(err).Str("func", "*workItemRepository.list").Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*workItemRepository.list").
			Str("kind", string(filter.Kind)).
			Msg("failed to execute query for listing work items")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.WorkItem, 0, 16)
	for rows.Next() {
		item, scanErr := scanWorkItem(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*workItemRepository.list").Msg("failed to scan work item row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*workItemRepository.list").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

func (r *workItemRepository) Update(ctx context.Context, id int64, changes map[string]any) (models.WorkItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateWorkItemQuery(r.builder, id, changes, time.Now().UTC())
	if err != nil {
		log.Err(err).Str("func", "*workItemRepository.Update").Int64("id", id).Msg("failed to create query")
		return models.WorkItem{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*workItemRepository.Update").Int64("id", id).Msg("failed to update work item")
		return models.WorkItem{}, r.execError(err)
	}
	n, err := affected(res)
	if err != nil {
		return models.WorkItem{}, err
	}
	if n == 0 {
		return models.WorkItem{}, ErrNotFound
	}

	return r.Get(ctx, id)
}

func (r *workItemRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteByIDQuery(r.builder, tableWorkItems, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*workItemRepository.Delete").Int64("id", id).Msg("failed to delete work item")
		return r.execError(err)
	}
	n, err := affected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *workItemRepository) Reorder(ctx context.Context, parentID int64, ids []int64) error {
	log := logger.FromContext(ctx)
	now := time.Now().UTC()

	err := r.withTx(ctx, func(tx *sql.Tx) error {
		countQuery, countArgs, err := buildCountChildrenQuery(r.builder, parentID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		var children int
		if err := tx.QueryRowContext(ctx, countQuery, countArgs...).Scan(&children); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		if children != len(ids) {
			return fmt.Errorf("%w: parent %d has %d children, got %d ids", ErrNotFound, parentID, children, len(ids))
		}

		for position, id := range ids {
			query, args, err := buildSetPositionQuery(r.builder, parentID, id, position, now)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}

			res, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return r.execError(err)
			}
			n, err := affected(res)
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("%w: item %d is not a child of %d", ErrNotFound, id, parentID)
			}
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*workItemRepository.Reorder").Int64("parent_id", parentID).Msg("failed to reorder children")
		return err
	}

	return nil
}

func (r *workItemRepository) BulkUpdate(ctx context.Context, kind models.EntityKind, ids []int64, changes map[string]any) error {
	log := logger.FromContext(ctx)

	query, args, err := buildBulkUpdateWorkItemsQuery(r.builder, kind, ids, changes, time.Now().UTC())
	if err != nil {
		log.Err(err).Str("func", "*workItemRepository.BulkUpdate").Msg("failed to create query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return r.execError(err)
		}
		n, err := affected(res)
		if err != nil {
			return err
		}
		// rolls back unless every id matched
		if n != int64(len(ids)) {
			return fmt.Errorf("%w: %d of %d %s items matched", ErrNotFound, n, len(ids), kind)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*workItemRepository.BulkUpdate").Int("count", len(ids)).Msg("bulk update failed")
		return err
	}

	return nil
}

func scanWorkItem(row rowScanner) (models.WorkItem, error) {
	var item models.WorkItem
	err := row.Scan(
		&item.ID,
		&item.Kind,
		&item.ParentID,
		&item.Title,
		&item.Description,
		&item.Status,
		&item.Priority,
		&item.PhaseID,
		&item.CustomerID,
		&item.AssigneeID,
		&item.CreatedBy,
		&item.Position,
		&item.EstimatedHours,
		&item.StartDate,
		&item.EndDate,
		&item.DueDate,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.WorkItem{}, ErrNotFound
	}
	return item, err
}
