// Package handlers implements HTTP handlers for the accounts API.
package handlers

import (
	"log/slog"

	"accounts-api/internal/service"
)

// Handler holds the service dependencies for all endpoints
type Handler struct {
	accounts      service.AccountManager
	instruments   service.InstrumentManager
	healthChecker service.HealthChecker
	logger        *slog.Logger
}

// NewHandler creates a new Handler with injected service dependencies.
func NewHandler(
	accounts service.AccountManager,
	instruments service.InstrumentManager,
	healthChecker service.HealthChecker,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		accounts:      accounts,
		instruments:   instruments,
		healthChecker: healthChecker,
		logger:        logger,
	}
}
