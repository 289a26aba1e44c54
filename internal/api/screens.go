package api

import (
	"net/http"

	"github.com/dxascend/ascend-core/internal/project"
)

// handleListScreens returns every screen, enabled or not.
func (s *Server) handleListScreens(w http.ResponseWriter, r *http.Request) {
	screens, err := s.projects.ListScreens(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err, "failed to list screens")
		return
	}
	writeJSON(w, http.StatusOK, screens)
}

// handleGetScreen returns a single screen by ID.
func (s *Server) handleGetScreen(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	screen, err := s.projects.GetScreen(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to get screen")
		return
	}
	writeJSON(w, http.StatusOK, screen)
}

func (s *Server) handleCreateScreen(w http.ResponseWriter, r *http.Request) {
	var in project.ScreenInput
	if !decodeBody(w, r, &in) {
		return
	}

	screen, err := s.projects.CreateScreen(r.Context(), in)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to create screen")
		return
	}
	writeJSON(w, http.StatusCreated, screen)
}

func (s *Server) handleUpdateScreen(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in project.ScreenInput
	if !decodeBody(w, r, &in) {
		return
	}

	screen, err := s.projects.UpdateScreen(r.Context(), id, in)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to update screen")
		return
	}
	writeJSON(w, http.StatusOK, screen)
}

// handleDeleteScreen removes a screen and, by cascade, its widgets.
func (s *Server) handleDeleteScreen(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.projects.DeleteScreen(r.Context(), id); err != nil {
		s.writeStoreError(w, r, err, "failed to delete screen")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListWidgets returns the widgets of one screen.
func (s *Server) handleListWidgets(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	widgets, err := s.projects.ListWidgets(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to list widgets")
		return
	}
	writeJSON(w, http.StatusOK, widgets)
}

// handleCreateWidget adds a widget to the screen named in the path.
func (s *Server) handleCreateWidget(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in project.WidgetInput
	if !decodeBody(w, r, &in) {
		return
	}
	in.ScreenID = id

	widget, err := s.projects.CreateWidget(r.Context(), in)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to create widget")
		return
	}
	writeJSON(w, http.StatusCreated, widget)
}

func (s *Server) handleGetWidget(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	widget, err := s.projects.GetWidget(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to get widget")
		return
	}
	writeJSON(w, http.StatusOK, widget)
}

// handleUpdateWidget replaces a widget. screen_id in the body may move it.
func (s *Server) handleUpdateWidget(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in project.WidgetInput
	if !decodeBody(w, r, &in) {
		return
	}

	widget, err := s.projects.UpdateWidget(r.Context(), id, in)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to update widget")
		return
	}
	writeJSON(w, http.StatusOK, widget)
}

func (s *Server) handleDeleteWidget(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.projects.DeleteWidget(r.Context(), id); err != nil {
		s.writeStoreError(w, r, err, "failed to delete widget")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
