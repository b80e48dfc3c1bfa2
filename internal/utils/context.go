// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, date coercion
// of request payloads, envelope response writing, JWT token generation
// and validation, and other common operations.
package utils

import (
	"context"

	"github.com/MKhiriev/go-project-tracker/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// ActorCtxKey is the key the authentication middleware stores the
// authenticated models.Actor under.
var ActorCtxKey = contextKey("actor")

// WithActor returns a copy of ctx carrying actor.
func WithActor(ctx context.Context, actor models.Actor) context.Context {
	return context.WithValue(ctx, ActorCtxKey, actor)
}

// ActorFromContext retrieves the authenticated actor from the context.
//
// Returns the actor and an ok flag:
//   - ok == true  - an actor with a positive user ID is present
//   - ok == false - value is missing, has an unexpected type, or is anonymous
func ActorFromContext(ctx context.Context) (models.Actor, bool) {
	actor, ok := ctx.Value(ActorCtxKey).(models.Actor)
	if !ok || actor.UserID <= 0 {
		return models.Actor{}, false
	}
	return actor, true
}
