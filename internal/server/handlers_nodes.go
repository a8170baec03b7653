package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/career-wizard/internal/hierarchy"
)

// ---------------------------------------------------------------------
// Node Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListNodes(w http.ResponseWriter, r *http.Request) {
	nodes, err := s.store.ListNodes(r.Context())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"nodes": nodes})
}

func (s *Server) handleCreateNode(w http.ResponseWriter, r *http.Request) {
	var input hierarchy.CreateNodeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Type == "" {
		s.errorResponse(w, http.StatusBadRequest, "Node type is required")
		return
	}

	node, err := s.store.CreateNode(r.Context(), input)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, node)
}

func (s *Server) handleGetNode(w http.ResponseWriter, r *http.Request) {
	nodeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid node ID")
		return
	}

	node, err := s.store.GetNode(r.Context(), nodeID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, node)
}

// handleUpdateNode replaces a node's metadata document. The whole document is
// written as given; clients doing read-modify-write merges own the read side.
func (s *Server) handleUpdateNode(w http.ResponseWriter, r *http.Request) {
	nodeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid node ID")
		return
	}

	var req struct {
		Meta map[string]any `json:"meta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	node, err := s.store.UpdateNode(r.Context(), nodeID, req.Meta)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, node)
}

func (s *Server) handleDeleteNode(w http.ResponseWriter, r *http.Request) {
	nodeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid node ID")
		return
	}

	if err := s.store.DeleteNode(r.Context(), nodeID); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ---------------------------------------------------------------------
// Update Record Handlers
// ---------------------------------------------------------------------

func (s *Server) handleCreateUpdate(w http.ResponseWriter, r *http.Request) {
	nodeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid node ID")
		return
	}

	var input hierarchy.CreateUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := s.store.CreateUpdate(r.Context(), nodeID, input)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, record)
}

func (s *Server) handleListUpdates(w http.ResponseWriter, r *http.Request) {
	nodeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid node ID")
		return
	}

	records, err := s.store.ListUpdates(r.Context(), nodeID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"updates": records})
}

func (s *Server) handleGetUpdate(w http.ResponseWriter, r *http.Request) {
	updateID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid update ID")
		return
	}

	record, err := s.store.GetUpdate(r.Context(), updateID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "Update not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, record)
}
