// Package api wires the HTTP handlers into the service layer.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mnakahara/trade-journal-backend/internal/api/handlers"
	custommiddleware "github.com/mnakahara/trade-journal-backend/internal/api/middleware"
	"github.com/mnakahara/trade-journal-backend/internal/config"
	"github.com/mnakahara/trade-journal-backend/internal/service"
)

// Services bundles the service-layer dependencies the router needs.
type Services struct {
	System      *service.SystemService
	Record      *service.RecordService
	Tag         *service.TagService
	Performance *service.PerformanceService
	Marketdata  *service.MarketdataService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/records", func(r chi.Router) {
			recordHandler := handlers.NewRecordHandler(services.Record)
			r.Get("/", recordHandler.Records)
			r.Post("/", recordHandler.CreateRecord)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", recordHandler.Record)
				r.Put("/", recordHandler.UpdateRecord)
				r.Delete("/", recordHandler.DeleteRecord)

				r.Post("/sales", recordHandler.AddSale)
				r.Put("/sales/{legId}", recordHandler.UpdateSale)
				r.Delete("/sales/{legId}", recordHandler.DeleteSale)

				r.Put("/tags", recordHandler.SetTags)
			})
		})

		r.Route("/tags", func(r chi.Router) {
			tagHandler := handlers.NewTagHandler(services.Tag)
			r.Get("/", tagHandler.Tags)
			r.Post("/", tagHandler.CreateTag)
			r.Get("/palette", tagHandler.Palette)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", tagHandler.Tag)
				r.Put("/", tagHandler.UpdateTag)
				r.Delete("/", tagHandler.DeleteTag)
			})
		})

		r.Get("/emotions", handlers.NewEmotionHandler().Emotions)

		r.Route("/performance", func(r chi.Router) {
			performanceHandler := handlers.NewPerformanceHandler(services.Performance)
			r.Get("/summary", performanceHandler.Summary)
			r.Get("/monthly", performanceHandler.Monthly)
			r.Get("/ranking", performanceHandler.Ranking)
		})

		r.Route("/treemap", func(r chi.Router) {
			treemapHandler := handlers.NewTreemapHandler(services.Performance)
			r.Get("/", treemapHandler.Treemap)
		})

		r.Route("/marketdata", func(r chi.Router) {
			marketdataHandler := handlers.NewMarketdataHandler(services.Marketdata, services.Record)
			r.Get("/chart", marketdataHandler.Chart)
			r.Get("/securities", marketdataHandler.Securities)
			r.Post("/securities/refresh", marketdataHandler.RefreshSecurities)
			r.Get("/securities/{code}", marketdataHandler.Security)
			r.Post("/prefetch", marketdataHandler.Prefetch)
			r.Get("/config", marketdataHandler.Config)
			r.Put("/token", marketdataHandler.SetToken)
		})

		r.Route("/reports", func(r chi.Router) {
			reportHandler := handlers.NewReportHandler(services.Performance, services.Record)
			r.Get("/performance", reportHandler.PerformanceReport)
		})
	})

	return r
}
