package models

import (
	"encoding/json"
	"time"
)

// Phase is a sequential stage an epic and its stories pass through.
type Phase struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// Customer is the party an epic is delivered for.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Company   string    `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Template stores a reusable create payload for one work-item kind.
// Payload is kept verbatim and goes through the same coercion and
// validation as a regular create request when instantiated.
type Template struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Kind      EntityKind      `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	CreatedBy int64           `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

// Comment is a note left by a user on any commentable entity.
type Comment struct {
	ID         int64      `json:"id"`
	EntityKind EntityKind `json:"entity_kind"`
	EntityID   int64      `json:"entity_id"`
	AuthorID   int64      `json:"author_id"`
	Body       string     `json:"body"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NotificationKind tells what happened to trigger a notification.
type NotificationKind string

const (
	NotificationCommentAdded NotificationKind = "comment_added"
	NotificationAssigned     NotificationKind = "assigned"
	NotificationPhaseChanged NotificationKind = "phase_changed"
)

// Notification is a persisted message for one user. Delivered tracks the
// outbound webhook push; Read tracks the user acknowledging it.
type Notification struct {
	ID         int64            `json:"id"`
	UserID     int64            `json:"user_id"`
	Kind       NotificationKind `json:"kind"`
	EntityKind EntityKind       `json:"entity_kind"`
	EntityID   int64            `json:"entity_id"`
	Message    string           `json:"message"`
	Read       bool             `json:"read"`
	Delivered  bool             `json:"-"`
	CreatedAt  time.Time        `json:"created_at"`
}
