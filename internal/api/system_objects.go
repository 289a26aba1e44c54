package api

import (
	"net/http"

	"github.com/dxascend/ascend-core/internal/objecttree"
)

// handleListSystemObjects returns the flat object tree, virtual screen
// nodes included.
func (s *Server) handleListSystemObjects(w http.ResponseWriter, r *http.Request) {
	objects, err := s.objects.List(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err, "failed to list system objects")
		return
	}
	writeJSON(w, http.StatusOK, objects)
}

// handleCreateSystemObject creates an object. Graphic objects also get
// their screen, atomically.
func (s *Server) handleCreateSystemObject(w http.ResponseWriter, r *http.Request) {
	var in objecttree.CreateInput
	if !decodeBody(w, r, &in) {
		return
	}

	obj, err := s.objects.Create(r.Context(), in)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to create system object")
		return
	}
	writeJSON(w, http.StatusCreated, obj)
}

// handleUpdateSystemObject applies a partial update.
func (s *Server) handleUpdateSystemObject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in objecttree.UpdateInput
	if !decodeBody(w, r, &in) {
		return
	}

	obj, err := s.objects.Update(r.Context(), id, in)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to update system object")
		return
	}
	writeJSON(w, http.StatusOK, obj)
}

// handleDeleteSystemObject hard-deletes one object. Children are kept.
func (s *Server) handleDeleteSystemObject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.objects.Delete(r.Context(), id); err != nil {
		s.writeStoreError(w, r, err, "failed to delete system object")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
