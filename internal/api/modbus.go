package api

import (
	"net/http"

	"github.com/dxascend/ascend-core/internal/project"
)

// =============================================================================
// Interfaces
// =============================================================================

func (s *Server) handleListInterfaces(w http.ResponseWriter, r *http.Request) {
	ifaces, err := s.projects.ListInterfaces(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err, "failed to list interfaces")
		return
	}
	writeJSON(w, http.StatusOK, ifaces)
}

func (s *Server) handleCreateInterface(w http.ResponseWriter, r *http.Request) {
	var in project.InterfaceInput
	if !decodeBody(w, r, &in) {
		return
	}

	iface, err := s.projects.CreateInterface(r.Context(), in)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to create interface")
		return
	}
	writeJSON(w, http.StatusCreated, iface)
}

func (s *Server) handleUpdateInterface(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in project.InterfaceInput
	if !decodeBody(w, r, &in) {
		return
	}

	iface, err := s.projects.UpdateInterface(r.Context(), id, in)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to update interface")
		return
	}
	writeJSON(w, http.StatusOK, iface)
}

func (s *Server) handleDeleteInterface(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.projects.DeleteInterface(r.Context(), id); err != nil {
		s.writeStoreError(w, r, err, "failed to delete interface")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Devices
// =============================================================================

// handleListDevices returns devices, optionally for one interface_id.
func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	interfaceID, ok := queryID(w, r, "interface_id")
	if !ok {
		return
	}

	devices, err := s.projects.ListDevices(r.Context(), interfaceID)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to list devices")
		return
	}
	writeJSON(w, http.StatusOK, devices)
}

func (s *Server) handleCreateDevice(w http.ResponseWriter, r *http.Request) {
	var in project.DeviceInput
	if !decodeBody(w, r, &in) {
		return
	}

	device, err := s.projects.CreateDevice(r.Context(), in)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to create device")
		return
	}
	writeJSON(w, http.StatusCreated, device)
}

func (s *Server) handleUpdateDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in project.DeviceInput
	if !decodeBody(w, r, &in) {
		return
	}

	device, err := s.projects.UpdateDevice(r.Context(), id, in)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to update device")
		return
	}
	writeJSON(w, http.StatusOK, device)
}

func (s *Server) handleDeleteDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.projects.DeleteDevice(r.Context(), id); err != nil {
		s.writeStoreError(w, r, err, "failed to delete device")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Datapoints
// =============================================================================

// handleListDatapoints returns datapoints, optionally for one device_id.
func (s *Server) handleListDatapoints(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := queryID(w, r, "device_id")
	if !ok {
		return
	}

	datapoints, err := s.projects.ListDatapoints(r.Context(), deviceID)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to list datapoints")
		return
	}
	writeJSON(w, http.StatusOK, datapoints)
}

func (s *Server) handleCreateDatapoint(w http.ResponseWriter, r *http.Request) {
	var in project.DatapointInput
	if !decodeBody(w, r, &in) {
		return
	}

	dp, err := s.projects.CreateDatapoint(r.Context(), in)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to create datapoint")
		return
	}
	writeJSON(w, http.StatusCreated, dp)
}

func (s *Server) handleUpdateDatapoint(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in project.DatapointInput
	if !decodeBody(w, r, &in) {
		return
	}

	dp, err := s.projects.UpdateDatapoint(r.Context(), id, in)
	if err != nil {
		s.writeStoreError(w, r, err, "failed to update datapoint")
		return
	}
	writeJSON(w, http.StatusOK, dp)
}

func (s *Server) handleDeleteDatapoint(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.projects.DeleteDatapoint(r.Context(), id); err != nil {
		s.writeStoreError(w, r, err, "failed to delete datapoint")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
