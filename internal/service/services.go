package service

import (
	"github.com/MKhiriev/go-project-tracker/internal/config"
	"github.com/MKhiriev/go-project-tracker/internal/logger"
	"github.com/MKhiriev/go-project-tracker/internal/store"
	"github.com/MKhiriev/go-project-tracker/internal/validators"
)

type Services struct {
	AuthService         AuthService
	EpicService         EpicService
	PhaseService        PhaseService
	CustomerService     CustomerService
	TemplateService     TemplateService
	CommentService      CommentService
	NotificationService NotificationService
}

func NewServices(storages *store.Storages, validator validators.Validator, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	notifications := NewNotificationService(storages.NotificationRepository, logger)

	epics := NewEpicLoggingService().Wrap(
		NewEpicService(storages.WorkItemRepository, storages.PhaseRepository, notifications, cfg.Workers, logger),
	)

	return &Services{
		AuthService:         NewAuthService(storages.UserRepository, cfg.App, logger),
		EpicService:         epics,
		PhaseService:        NewPhaseService(storages.PhaseRepository, logger),
		CustomerService:     NewCustomerService(storages.CustomerRepository, logger),
		TemplateService:     NewTemplateService(storages.TemplateRepository, epics, validator, logger),
		CommentService:      NewCommentService(storages.CommentRepository, storages.WorkItemRepository, storages.CustomerRepository, notifications, logger),
		NotificationService: notifications,
	}
}
