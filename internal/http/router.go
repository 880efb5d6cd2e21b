package httpx

import (
	"encoding/json"
	"net/http"

	"assetdesk/internal/config"
	"assetdesk/internal/http/handlers"
	middlewarex "assetdesk/internal/http/middleware"
	"assetdesk/internal/services/inventory"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDependencies holds all dependencies for the HTTP router
type RouterDependencies struct {
	Config    config.Cfg
	Inventory *inventory.Service
	// Registry receives the HTTP and runtime metrics; a fresh one is
	// created when nil.
	Registry *prometheus.Registry
}

// NewRouter creates the HTTP router
func NewRouter(deps RouterDependencies) http.Handler {
	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	metrics := middlewarex.NewMetrics(reg)

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middlewarex.CORS(deps.Config.HTTP.AllowedOrigins))
	r.Use(metrics.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status": "ok",
		})
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Route("/assets", func(r chi.Router) {
		r.Get("/", handlers.ListAssets(deps.Inventory))
		r.Post("/", handlers.CreateAsset(deps.Inventory))
		r.Get("/{id}", handlers.GetAsset(deps.Inventory))
		r.Put("/{id}", handlers.UpdateAsset(deps.Inventory))
		r.Delete("/{id}", handlers.DeleteAsset(deps.Inventory))
	})

	r.Route("/admin", func(r chi.Router) {
		r.Get("/assets", handlers.AdminAssets(deps.Inventory, deps.Config.UI.MaxVisiblePages))
	})

	return r
}
