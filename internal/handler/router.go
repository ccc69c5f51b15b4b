package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Routes bundles the handlers the router needs.
type Routes struct {
	Events   *EventHandler
	Settings *SettingsHandler
	Health   http.HandlerFunc
	Log      logrus.FieldLogger
}

// NewRouter builds the chi router with the global middleware stack.
func NewRouter(rt Routes) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(Metrics)
	if rt.Log != nil {
		r.Use(Logger(rt.Log))
	}
	r.Use(CORS)

	r.Get("/health", rt.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/events", func(r chi.Router) {
		r.Post("/", rt.Events.CreateEvent)
		r.Get("/", rt.Events.ListEvents)
		r.Get("/{id}", rt.Events.GetEvent)
		r.Patch("/{id}", rt.Events.UpdateEvent)
		r.Delete("/{id}", rt.Events.DeleteEvent)
		r.Post("/{id}/approve", rt.Events.ApproveEvent)
		r.Post("/{id}/distribute", rt.Events.DistributeEvent)
		r.Get("/{id}/export", rt.Events.ExportEvent)
	})

	r.Route("/settings", func(r chi.Router) {
		r.Get("/", rt.Settings.GetSettings)
		r.Patch("/", rt.Settings.UpdateSettings)
		r.Put("/departments/{department}/email", rt.Settings.UpdateDepartmentEmail)
	})

	return r
}
