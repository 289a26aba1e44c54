package api

import (
	"net/http"
	"strings"
)

// handleRuntimeScreens lists the enabled screens a display client may open.
func (s *Server) handleRuntimeScreens(w http.ResponseWriter, r *http.Request) {
	screens, err := s.composer.ListScreens(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err, "failed to list screens")
		return
	}
	writeJSON(w, http.StatusOK, screens)
}

// handleRuntimeScreen returns the runtime document of an enabled screen.
func (s *Server) handleRuntimeScreen(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	rt, err := s.composer.Compose(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to build runtime")
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

// handleRuntimeScreenByRoute resolves ?route= to a screen and returns its
// runtime document.
func (s *Server) handleRuntimeScreenByRoute(w http.ResponseWriter, r *http.Request) {
	route := strings.TrimSpace(r.URL.Query().Get("route"))
	if route == "" {
		writeBadRequest(w, "route parameter is required")
		return
	}

	screen, err := s.resolver.Resolve(r.Context(), route)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to resolve route")
		return
	}

	rt, err := s.composer.Compose(r.Context(), screen.ID)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to build runtime")
		return
	}
	writeJSON(w, http.StatusOK, rt)
}
