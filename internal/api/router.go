package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeNotFound(w, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllow, "method not allowed")
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Runtime surface for display clients
		r.Route("/runtime", func(r chi.Router) {
			r.Get("/screens", s.handleRuntimeScreens)
			r.Get("/screen/{id}", s.handleRuntimeScreen)
			r.Get("/screen-by-route", s.handleRuntimeScreenByRoute)
		})

		// System object tree
		r.Route("/system-objects", func(r chi.Router) {
			r.Get("/", s.handleListSystemObjects)
			r.Post("/", s.handleCreateSystemObject)
			r.Put("/{id}", s.handleUpdateSystemObject)
			r.Delete("/{id}", s.handleDeleteSystemObject)
		})

		// Screens and widgets
		r.Route("/screens", func(r chi.Router) {
			r.Get("/", s.handleListScreens)
			r.Post("/", s.handleCreateScreen)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetScreen)
				r.Put("/", s.handleUpdateScreen)
				r.Delete("/", s.handleDeleteScreen)
				r.Get("/widgets", s.handleListWidgets)
				r.Post("/widgets", s.handleCreateWidget)
			})
		})
		r.Route("/widgets/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetWidget)
			r.Put("/", s.handleUpdateWidget)
			r.Delete("/", s.handleDeleteWidget)
		})

		// Bindings
		r.Route("/bindings", func(r chi.Router) {
			r.Get("/", s.handleListBindings)
			r.Post("/", s.handleCreateBinding)
			r.Delete("/{id}", s.handleDeleteBinding)
		})

		// Field-bus definitions
		r.Route("/modbus", func(r chi.Router) {
			r.Route("/interfaces", func(r chi.Router) {
				r.Get("/", s.handleListInterfaces)
				r.Post("/", s.handleCreateInterface)
				r.Put("/{id}", s.handleUpdateInterface)
				r.Delete("/{id}", s.handleDeleteInterface)
			})
			r.Route("/devices", func(r chi.Router) {
				r.Get("/", s.handleListDevices)
				r.Post("/", s.handleCreateDevice)
				r.Put("/{id}", s.handleUpdateDevice)
				r.Delete("/{id}", s.handleDeleteDevice)
			})
			r.Route("/datapoints", func(r chi.Router) {
				r.Get("/", s.handleListDatapoints)
				r.Post("/", s.handleCreateDatapoint)
				r.Put("/{id}", s.handleUpdateDatapoint)
				r.Delete("/{id}", s.handleDeleteDatapoint)
			})
		})
	})

	return r
}
