package http

import (
	"time"

	"github.com/MKhiriev/go-project-tracker/internal/config"
	"github.com/MKhiriev/go-project-tracker/internal/logger"
	"github.com/MKhiriev/go-project-tracker/internal/service"
	"github.com/MKhiriev/go-project-tracker/internal/validators"
)

type Handler struct {
	services  *service.Services
	validator validators.Validator

	requestTimeout time.Duration
	version        string

	logger *logger.Logger
}

func NewHandler(services *service.Services, validator validators.Validator, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		validator:      validator,
		requestTimeout: cfg.Server.RequestTimeout,
		version:        cfg.App.Version,
		logger:         logger,
	}
}
