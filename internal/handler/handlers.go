package handler

import (
	"github.com/MKhiriev/go-project-tracker/internal/config"
	"github.com/MKhiriev/go-project-tracker/internal/handler/grpc"
	"github.com/MKhiriev/go-project-tracker/internal/handler/http"
	"github.com/MKhiriev/go-project-tracker/internal/logger"
	"github.com/MKhiriev/go-project-tracker/internal/service"
	"github.com/MKhiriev/go-project-tracker/internal/validators"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers builds a transport handler for every address configured in
// cfg.Server.
func NewHandlers(services *service.Services, validator validators.Validator, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, validator, cfg, logger)
	}
	if cfg.Server.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
