package handlers

import (
	"log/slog"
	"net/http"

	"accounts-api/internal/api"
	"accounts-api/internal/cache"
	"accounts-api/internal/config"
	"accounts-api/internal/db"
	"accounts-api/internal/metrics"
	"accounts-api/internal/middleware"
	"accounts-api/internal/repository"
	"accounts-api/internal/service"
)

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(
	database *db.DB,
	cfg *config.Config,
	logger *slog.Logger,
) http.Handler {
	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector()
	}

	var store *cache.Cache
	if cfg.Cache.Enabled {
		store = cache.New(cfg.Cache.TTL)
		if collector != nil {
			store.OnLookup(collector.RecordCacheLookup)
		}
	}

	accountService := service.NewAccountService(database, store)
	instrumentService := service.NewInstrumentService(database, store)

	handler := NewHandler(accountService, instrumentService, database, logger)

	mux := http.NewServeMux()
	api.RegisterDocsRoutes(mux)

	mux.HandleFunc("GET /health", handler.GetHealth)

	mux.HandleFunc("POST /api/v1/accounts", handler.CreateAccount)
	mux.HandleFunc("GET /api/v1/accounts", handler.ListAccounts)
	mux.HandleFunc("GET /api/v1/accounts/{id}", handler.GetAccount)
	mux.HandleFunc("PUT /api/v1/accounts/{id}", handler.UpdateAccount)
	mux.HandleFunc("PATCH /api/v1/accounts/{id}/active", handler.SetAccountActive)
	mux.HandleFunc("DELETE /api/v1/accounts/{id}", handler.DeleteAccount)

	mux.HandleFunc("POST /api/v1/accounts/{ownerId}/instruments", handler.CreateInstrument)
	mux.HandleFunc("GET /api/v1/accounts/{ownerId}/instruments", handler.ListInstrumentsByOwner)
	mux.HandleFunc("GET /api/v1/instruments", handler.ListInstruments)
	mux.HandleFunc("GET /api/v1/instruments/{id}", handler.GetInstrument)
	mux.HandleFunc("PUT /api/v1/instruments/{id}", handler.UpdateInstrument)
	mux.HandleFunc("PATCH /api/v1/instruments/{id}/active", handler.SetInstrumentActive)
	mux.HandleFunc("DELETE /api/v1/instruments/{id}", handler.DeleteInstrument)

	if collector != nil {
		mux.Handle("GET /metrics", collector.Handler())
	}

	var finalHandler http.Handler = mux

	idempotencyRepo := repository.NewIdempotencyRepository(database)
	finalHandler = middleware.Idempotency(idempotencyRepo, logger)(finalHandler)

	if collector != nil {
		finalHandler = middleware.Metrics(collector)(finalHandler)
	}

	return finalHandler
}
