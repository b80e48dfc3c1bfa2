package models

import "time"

// WorkItem is the stored shape shared by epics, stories, tasks and subtasks.
// Kind tells the levels apart; ParentID points at the owning item one level
// up and is nil for epics.
type WorkItem struct {
	ID          int64      `json:"id"`
	Kind        EntityKind `json:"kind"`
	ParentID    *int64     `json:"parent_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`

	// PhaseID is meaningful for epics and stories only.
	PhaseID *int64 `json:"phase_id,omitempty"`

	// CustomerID is meaningful for epics only.
	CustomerID *int64 `json:"customer_id,omitempty"`

	AssigneeID     *int64   `json:"assignee_id,omitempty"`
	CreatedBy      int64    `json:"created_by"`
	Position       int      `json:"position"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`

	StartDate *time.Time `json:"start_date,omitempty"`
	// EndDate is only stored for epics.
	EndDate *time.Time `json:"end_date,omitempty"`
	DueDate *time.Time `json:"due_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the WorkItem model.
func (w WorkItem) TableName() string {
	return "work_items"
}

// HierarchyNode is one item of a hierarchy tree together with its children,
// ordered by position.
type HierarchyNode struct {
	WorkItem
	Children []HierarchyNode `json:"children,omitempty"`
}

// TaskWithSubtasks is one entry of a story's task listing.
type TaskWithSubtasks struct {
	WorkItem
	Subtasks []WorkItem `json:"subtasks,omitempty"`
}

// WorkItemFilter narrows list queries. Zero-valued fields do not filter.
// ParentIDs matches children of any of the listed items.
type WorkItemFilter struct {
	Kind       EntityKind
	IDs        []int64
	ParentID   *int64
	ParentIDs  []int64
	Status     Status
	Priority   Priority
	PhaseID    *int64
	CustomerID *int64
	AssigneeID *int64
	Limit      uint64
	Offset     uint64
}

// BulkUpdateRequest applies the same changes to every task in IDs.
type BulkUpdateRequest struct {
	IDs     []int64        `json:"ids"`
	Changes map[string]any `json:"changes"`
}

// ReorderRequest lists the children of a parent in their new order.
type ReorderRequest struct {
	IDs []int64 `json:"ids"`
}

// MoveToPhaseRequest moves a story into another phase.
type MoveToPhaseRequest struct {
	PhaseID int64 `json:"phase_id"`
}
