package store

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-project-tracker/models"
	sq "github.com/Masterminds/squirrel"
)

const (
	tableUsers         = "users"
	tableWorkItems     = "work_items"
	tablePhases        = "phases"
	tableCustomers     = "customers"
	tableTemplates     = "templates"
	tableComments      = "comments"
	tableNotifications = "notifications"
)

var (
	userColumns = []string{"user_id", "login", "password_hash", "name", "created_at"}

	workItemColumns = []string{
		"id", "kind", "parent_id", "title", "description", "status", "priority",
		"phase_id", "customer_id", "assignee_id", "created_by", "position",
		"estimated_hours", "start_date", "end_date", "due_date", "created_at", "updated_at",
	}

	phaseColumns        = []string{"id", "name", "position"}
	customerColumns     = []string{"id", "name", "email", "company", "created_at"}
	templateColumns     = []string{"id", "name", "kind", "payload", "created_by", "created_at"}
	commentColumns      = []string{"id", "entity_kind", "entity_id", "author_id", "body", "created_at"}
	notificationColumns = []string{"id", "user_id", "kind", "entity_kind", "entity_id", "message", "read", "delivered", "created_at"}
)

// WorkItemUpdatableColumns lists the work_items columns an update may set.
var WorkItemUpdatableColumns = map[string]struct{}{
	"title":           {},
	"description":     {},
	"status":          {},
	"priority":        {},
	"phase_id":        {},
	"customer_id":     {},
	"assignee_id":     {},
	"estimated_hours": {},
	"start_date":      {},
	"end_date":        {},
	"due_date":        {},
}

// CustomerUpdatableColumns lists the customers columns an update may set.
var CustomerUpdatableColumns = map[string]struct{}{
	"name":    {},
	"email":   {},
	"company": {},
}

func checkColumns(changes map[string]any, allowed map[string]struct{}) error {
	for column := range changes {
		if _, ok := allowed[column]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownColumn, column)
		}
	}
	return nil
}

// ─── users ────────────────────────────────────────────────────────────────────

func buildInsertUserQuery(sb sq.StatementBuilderType, user models.User) (string, []any, error) {
	return sb.Insert(tableUsers).
		Columns("login", "password_hash", "name", "created_at").
		Values(user.Login, user.PasswordHash, user.Name, user.CreatedAt).
		Suffix("RETURNING user_id").
		ToSql()
}

func buildSelectUserByLoginQuery(sb sq.StatementBuilderType, login string) (string, []any, error) {
	return sb.Select(userColumns...).
		From(tableUsers).
		Where(sq.Eq{"login": login}).
		ToSql()
}

// ─── work items ───────────────────────────────────────────────────────────────

// buildNextPositionQuery selects the position following the last sibling of
// an item of kind under parentID. Epics have no parent and are siblings of
// each other.
func buildNextPositionQuery(sb sq.StatementBuilderType, kind models.EntityKind, parentID *int64) (string, []any, error) {
	where := sq.Eq{"kind": string(kind), "parent_id": nil}
	if parentID != nil {
		where["parent_id"] = *parentID
	}

	return sb.Select("COALESCE(MAX(position), -1) + 1").
		From(tableWorkItems).
		Where(where).
		ToSql()
}

func buildInsertWorkItemQuery(sb sq.StatementBuilderType, item models.WorkItem) (string, []any, error) {
	return sb.Insert(tableWorkItems).
		Columns(
			"kind", "parent_id", "title", "description", "status", "priority",
			"phase_id", "customer_id", "assignee_id", "created_by", "position",
			"estimated_hours", "start_date", "end_date", "due_date", "created_at", "updated_at",
		).
		Values(
			string(item.Kind), item.ParentID, item.Title, item.Description, string(item.Status), string(item.Priority),
			item.PhaseID, item.CustomerID, item.AssigneeID, item.CreatedBy, item.Position,
			item.EstimatedHours, item.StartDate, item.EndDate, item.DueDate, item.CreatedAt, item.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
}

func buildSelectWorkItemsQuery(sb sq.StatementBuilderType, filter models.WorkItemFilter) (string, []any, error) {
	query := sb.Select(workItemColumns...).From(tableWorkItems)

	if filter.Kind != "" {
		query = query.Where(sq.Eq{"kind": string(filter.Kind)})
	}
	if len(filter.IDs) > 0 {
		query = query.Where(sq.Eq{"id": filter.IDs})
	}
	if filter.ParentID != nil {
		query = query.Where(sq.Eq{"parent_id": *filter.ParentID})
	}
	if len(filter.ParentIDs) > 0 {
		query = query.Where(sq.Eq{"parent_id": filter.ParentIDs})
	}
	if filter.Status != "" {
		query = query.Where(sq.Eq{"status": string(filter.Status)})
	}
	if filter.Priority != "" {
		query = query.Where(sq.Eq{"priority": string(filter.Priority)})
	}
	if filter.PhaseID != nil {
		query = query.Where(sq.Eq{"phase_id": *filter.PhaseID})
	}
	if filter.CustomerID != nil {
		query = query.Where(sq.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.AssigneeID != nil {
		query = query.Where(sq.Eq{"assignee_id": *filter.AssigneeID})
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	return query.OrderBy("parent_id", "position", "id").ToSql()
}

func buildUpdateWorkItemQuery(sb sq.StatementBuilderType, id int64, changes map[string]any, now time.Time) (string, []any, error) {
	if err := checkColumns(changes, WorkItemUpdatableColumns); err != nil {
		return "", nil, err
	}

	return sb.Update(tableWorkItems).
		SetMap(changes).
		Set("updated_at", now).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildBulkUpdateWorkItemsQuery(sb sq.StatementBuilderType, kind models.EntityKind, ids []int64, changes map[string]any, now time.Time) (string, []any, error) {
	if err := checkColumns(changes, WorkItemUpdatableColumns); err != nil {
		return "", nil, err
	}

	return sb.Update(tableWorkItems).
		SetMap(changes).
		Set("updated_at", now).
		Where(sq.Eq{"id": ids, "kind": string(kind)}).
		ToSql()
}

func buildSetPositionQuery(sb sq.StatementBuilderType, parentID, id int64, position int, now time.Time) (string, []any, error) {
	return sb.Update(tableWorkItems).
		Set("position", position).
		Set("updated_at", now).
		Where(sq.Eq{"id": id, "parent_id": parentID}).
		ToSql()
}

func buildCountChildrenQuery(sb sq.StatementBuilderType, parentID int64) (string, []any, error) {
	return sb.Select("COUNT(*)").
		From(tableWorkItems).
		Where(sq.Eq{"parent_id": parentID}).
		ToSql()
}

// ─── phases, customers, templates ─────────────────────────────────────────────

func buildInsertPhaseQuery(sb sq.StatementBuilderType, phase models.Phase) (string, []any, error) {
	return sb.Insert(tablePhases).
		Columns("name", "position").
		Values(phase.Name, phase.Position).
		Suffix("RETURNING id").
		ToSql()
}

func buildSelectPhasesQuery(sb sq.StatementBuilderType, ids ...int64) (string, []any, error) {
	query := sb.Select(phaseColumns...).From(tablePhases)
	if len(ids) > 0 {
		query = query.Where(sq.Eq{"id": ids})
	}
	return query.OrderBy("position", "id").ToSql()
}

func buildInsertCustomerQuery(sb sq.StatementBuilderType, customer models.Customer) (string, []any, error) {
	return sb.Insert(tableCustomers).
		Columns("name", "email", "company", "created_at").
		Values(customer.Name, customer.Email, customer.Company, customer.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
}

func buildSelectCustomersQuery(sb sq.StatementBuilderType, ids ...int64) (string, []any, error) {
	query := sb.Select(customerColumns...).From(tableCustomers)
	if len(ids) > 0 {
		query = query.Where(sq.Eq{"id": ids})
	}
	return query.OrderBy("name", "id").ToSql()
}

func buildUpdateCustomerQuery(sb sq.StatementBuilderType, id int64, changes map[string]any) (string, []any, error) {
	if len(changes) == 0 {
		return "", nil, fmt.Errorf("%w: nothing to update", ErrBuildingSQLQuery)
	}
	if err := checkColumns(changes, CustomerUpdatableColumns); err != nil {
		return "", nil, err
	}

	return sb.Update(tableCustomers).
		SetMap(changes).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildInsertTemplateQuery(sb sq.StatementBuilderType, template models.Template) (string, []any, error) {
	return sb.Insert(tableTemplates).
		Columns("name", "kind", "payload", "created_by", "created_at").
		Values(template.Name, string(template.Kind), string(template.Payload), template.CreatedBy, template.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
}

func buildSelectTemplatesQuery(sb sq.StatementBuilderType, kind models.EntityKind, ids ...int64) (string, []any, error) {
	query := sb.Select(templateColumns...).From(tableTemplates)
	if kind != "" {
		query = query.Where(sq.Eq{"kind": string(kind)})
	}
	if len(ids) > 0 {
		query = query.Where(sq.Eq{"id": ids})
	}
	return query.OrderBy("id").ToSql()
}

// ─── comments, notifications ──────────────────────────────────────────────────

func buildInsertCommentQuery(sb sq.StatementBuilderType, comment models.Comment) (string, []any, error) {
	return sb.Insert(tableComments).
		Columns("entity_kind", "entity_id", "author_id", "body", "created_at").
		Values(string(comment.EntityKind), comment.EntityID, comment.AuthorID, comment.Body, comment.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
}

func buildSelectCommentsQuery(sb sq.StatementBuilderType, where sq.Sqlizer) (string, []any, error) {
	return sb.Select(commentColumns...).
		From(tableComments).
		Where(where).
		OrderBy("created_at", "id").
		ToSql()
}

func buildInsertNotificationQuery(sb sq.StatementBuilderType, n models.Notification) (string, []any, error) {
	return sb.Insert(tableNotifications).
		Columns("user_id", "kind", "entity_kind", "entity_id", "message", "read", "delivered", "created_at").
		Values(n.UserID, string(n.Kind), string(n.EntityKind), n.EntityID, n.Message, n.Read, n.Delivered, n.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
}

func buildSelectNotificationsQuery(sb sq.StatementBuilderType, userID int64, unreadOnly bool) (string, []any, error) {
	where := sq.Eq{"user_id": userID}
	if unreadOnly {
		where["read"] = false
	}

	return sb.Select(notificationColumns...).
		From(tableNotifications).
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
}

func buildSelectUndeliveredQuery(sb sq.StatementBuilderType, limit uint64) (string, []any, error) {
	return sb.Select(notificationColumns...).
		From(tableNotifications).
		Where(sq.Eq{"delivered": false}).
		OrderBy("id").
		Limit(limit).
		ToSql()
}

func buildMarkNotificationsQuery(sb sq.StatementBuilderType, column string, where sq.Eq) (string, []any, error) {
	return sb.Update(tableNotifications).
		Set(column, true).
		Where(where).
		ToSql()
}

func buildDeleteByIDQuery(sb sq.StatementBuilderType, table string, id int64) (string, []any, error) {
	return sb.Delete(table).Where(sq.Eq{"id": id}).ToSql()
}
