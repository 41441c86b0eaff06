package httpapi

import (
	"net/http"

	"github.com/NileMind-Team/pahray-sub001/internal/config"
	"github.com/NileMind-Team/pahray-sub001/internal/http/handlers"
	"github.com/NileMind-Team/pahray-sub001/internal/middleware"
	"github.com/NileMind-Team/pahray-sub001/internal/queue"
	"github.com/NileMind-Team/pahray-sub001/internal/report"
	"github.com/NileMind-Team/pahray-sub001/internal/storage"
	"github.com/NileMind-Team/pahray-sub001/internal/upstream"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func NewRouter(reports *report.Controller, backend *upstream.Client, archive *storage.ReportArchive, queueClient *queue.Client, logger *zap.Logger, cfg config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.Telemetry(logger))

	if cfg.Env == "development" || len(cfg.CorsAllowedOrigins) > 0 {
		options := cors.Options{
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{
				"Accept",
				"Authorization",
				"Content-Type",
				"X-Requested-With",
				"Cache-Control",
			},
			AllowCredentials: true,
			MaxAge:           300,
		}
		if cfg.Env == "development" {
			options.AllowOriginFunc = func(_ *http.Request, origin string) bool {
				return true
			}
		} else {
			options.AllowedOrigins = cfg.CorsAllowedOrigins
		}
		r.Use(cors.Handler(options))
	}

	h := &handlers.Handler{
		Reports: reports,
		Backend: backend,
		Queue:   queueClient,
		Logger:  logger,
		Config:  cfg,
	}
	if archive != nil {
		h.Archive = archive
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Route("/reports/sales", func(r chi.Router) {
			r.Get("/", h.SalesReport)
			r.Get("/snapshot", h.SalesReportSnapshot)
			r.Get("/document", h.SalesReportDocument)
			r.Get("/pdf", h.SalesReportPDF)
			r.Post("/print", h.SalesReportPrint)
			r.Post("/archive", h.SalesReportArchive)
			r.Get("/archive", h.SalesReportArchiveList)
		})

		r.Get("/orders/{orderId}", h.OrderDetail)

		r.Route("/branches", func(r chi.Router) {
			r.Get("/", h.BranchesList)
			r.Post("/", h.BranchSave)
			r.Put("/{branchId}", h.BranchSave)
			r.Delete("/{branchId}", h.BranchDelete)
		})

		r.Route("/delivery-areas", func(r chi.Router) {
			r.Get("/", h.DeliveryAreasList)
			r.Post("/", h.DeliveryAreaSave)
			r.Put("/{areaId}", h.DeliveryAreaSave)
			r.Delete("/{areaId}", h.DeliveryAreaDelete)
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", h.ShiftsList)
			r.Post("/", h.ShiftSave)
			r.Put("/{shiftId}", h.ShiftSave)
			r.Delete("/{shiftId}", h.ShiftDelete)
		})
	})

	return r
}
