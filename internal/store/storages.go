package store

import "github.com/MKhiriev/go-project-tracker/internal/logger"

// Storages groups every repository the services depend on.
type Storages struct {
	UserRepository         UserRepository
	WorkItemRepository     WorkItemRepository
	PhaseRepository        PhaseRepository
	CustomerRepository     CustomerRepository
	TemplateRepository     TemplateRepository
	CommentRepository      CommentRepository
	NotificationRepository NotificationRepository
}

// NewStorages builds every repository on the same connection.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	log.Debug().Str("driver", db.driver).Msg("creating repositories")
	return &Storages{
		UserRepository:         NewUserRepository(db),
		WorkItemRepository:     NewWorkItemRepository(db),
		PhaseRepository:        NewPhaseRepository(db),
		CustomerRepository:     NewCustomerRepository(db),
		TemplateRepository:     NewTemplateRepository(db),
		CommentRepository:      NewCommentRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
