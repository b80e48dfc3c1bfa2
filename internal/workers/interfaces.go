package workers

import "context"

// Worker is a background loop bound to ctx.
type Worker interface {
	Run(ctx context.Context)
}
