// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EntityKind names one level of the work-item hierarchy or one of the
// auxiliary entities that can be commented on or templated.
type EntityKind string

const (
	KindEpic     EntityKind = "epic"
	KindStory    EntityKind = "story"
	KindTask     EntityKind = "task"
	KindSubtask  EntityKind = "subtask"
	KindCustomer EntityKind = "customer"
	KindComment  EntityKind = "comment"
	KindTemplate EntityKind = "template"
)

// WorkItemKinds lists hierarchy levels from the root down.
var WorkItemKinds = []EntityKind{KindEpic, KindStory, KindTask, KindSubtask}

// ParentKind returns the kind that owns items of kind k.
// The second result is false for epics and non-hierarchy kinds.
func (k EntityKind) ParentKind() (EntityKind, bool) {
	switch k {
	case KindStory:
		return KindEpic, true
	case KindTask:
		return KindStory, true
	case KindSubtask:
		return KindTask, true
	}
	return "", false
}

// IsWorkItem reports whether k is one of the four hierarchy levels.
func (k EntityKind) IsWorkItem() bool {
	switch k {
	case KindEpic, KindStory, KindTask, KindSubtask:
		return true
	}
	return false
}

// Date-bearing field names shared by payloads and storage columns.
const (
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
	FieldDueDate   = "due_date"
)

// DateFields is the single declaration of which payload fields carry dates
// for each work-item kind. Date coercion and schema declarations both read it.
var DateFields = map[EntityKind][]string{
	KindEpic:    {FieldStartDate, FieldEndDate, FieldDueDate},
	KindStory:   {FieldStartDate, FieldDueDate},
	KindTask:    {FieldStartDate, FieldDueDate},
	KindSubtask: {FieldStartDate, FieldDueDate},
}

// Status is the workflow state of a work item.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusInReview   Status = "in_review"
	StatusDone       Status = "done"
	StatusBlocked    Status = "blocked"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every accepted Status value.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusInReview, StatusDone, StatusBlocked, StatusCancelled}

// IsClosed reports whether no further work is expected on an item in status s.
func (s Status) IsClosed() bool {
	return s == StatusDone || s == StatusCancelled
}

// Priority ranks work items against each other.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Priorities lists every accepted Priority value.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
