package api

import (
	"net/http"

	"github.com/dxascend/ascend-core/internal/project"
)

// handleListBindings returns bindings joined with their widget, screen and
// datapoint names. screen_id, widget_id and datapoint_id narrow the list.
func (s *Server) handleListBindings(w http.ResponseWriter, r *http.Request) {
	var filter project.BindingFilter
	var ok bool
	if filter.ScreenID, ok = queryID(w, r, "screen_id"); !ok {
		return
	}
	if filter.WidgetID, ok = queryID(w, r, "widget_id"); !ok {
		return
	}
	if filter.DatapointID, ok = queryID(w, r, "datapoint_id"); !ok {
		return
	}

	bindings, err := s.projects.ListBindings(r.Context(), filter)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to list bindings")
		return
	}
	writeJSON(w, http.StatusOK, bindings)
}

func (s *Server) handleCreateBinding(w http.ResponseWriter, r *http.Request) {
	var in project.BindingInput
	if !decodeBody(w, r, &in) {
		return
	}

	binding, err := s.projects.CreateBinding(r.Context(), in)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to create binding")
		return
	}
	writeJSON(w, http.StatusCreated, binding)
}

func (s *Server) handleDeleteBinding(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.projects.DeleteBinding(r.Context(), id); err != nil {
		s.writeStoreError(w, r, err, "failed to delete binding")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
