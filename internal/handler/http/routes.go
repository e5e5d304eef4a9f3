package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-tube-accounts/internal/app"
	"github.com/MKhiriev/go-tube-accounts/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.NotFound(h.routeNotFound)
	router.MethodNotAllowed(h.routeNotFound)

	router.Get("/metrics", h.metrics.Handler().ServeHTTP)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/version", h.getServerVersion)
		r.Get("/ping", h.ping)

		r.Route("/users", func(r chi.Router) {
			// routes without authorization
			r.Post("/register", h.register)
			r.Post("/login", h.login)
			r.Post("/refresh-token", h.refreshToken)

			// routes behind the auth guard
			r.Group(func(r chi.Router) {
				r.Use(h.auth)
				r.Post("/logout", h.logout)
				r.Get("/current-user", h.currentUser)
			})
		})
	})

	return router
}

// routeNotFound answers unknown paths and unsupported methods alike, so a
// caller probing with the wrong method learns nothing about existing routes.
func (h *Handler) routeNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(r, w, models.NewErrorResponse(http.StatusNotFound, app.MsgRouteNotFound), http.StatusNotFound)
}
