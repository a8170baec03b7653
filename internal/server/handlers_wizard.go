package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/career-wizard/internal/wizard"
)

// ---------------------------------------------------------------------
// Wizard Session Handlers
//
// Sessions are held in memory; the aggregate only persists when a
// session submits. A restart drops open sessions, which matches the
// discard-on-abandon semantics of the wizard itself.
// ---------------------------------------------------------------------

// SessionResponse is the wire shape for a wizard session.
type SessionResponse struct {
	SessionID uuid.UUID       `json:"session_id"`
	NodeID    uuid.UUID       `json:"node_id"`
	Snapshot  wizard.Snapshot `json:"snapshot"`
}

func (s *Server) sessionResponse(id uuid.UUID, c *wizard.Controller) SessionResponse {
	return SessionResponse{
		SessionID: id,
		NodeID:    c.NodeID(),
		Snapshot:  c.Snapshot(),
	}
}

func (s *Server) getSession(id uuid.UUID) *wizard.Controller {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	return s.sessions[id]
}

// handleStartWizard opens a wizard session against a career transition node.
func (s *Server) handleStartWizard(w http.ResponseWriter, r *http.Request) {
	nodeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid node ID")
		return
	}

	// The node must exist before a session opens against it.
	if _, err := s.store.GetNode(r.Context(), nodeID); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	sessionID := uuid.New()
	controller := wizard.NewController(nodeID, s.store, s.store)

	s.sessionsMu.Lock()
	s.sessions[sessionID] = controller
	s.sessionsMu.Unlock()

	s.jsonResponse(w, http.StatusCreated, s.sessionResponse(sessionID, controller))
}

// handleGetWizard returns the current session snapshot.
func (s *Server) handleGetWizard(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID")
		return
	}

	controller := s.getSession(sessionID)
	if controller == nil {
		s.errorResponse(w, http.StatusNotFound, "Wizard session not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, s.sessionResponse(sessionID, controller))
}

// handleWizardNext applies the step patch and advances the session. On the
// final step this submits and, on success, includes the created update in the
// snapshot result.
func (s *Server) handleWizardNext(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID")
		return
	}

	controller := s.getSession(sessionID)
	if controller == nil {
		s.errorResponse(w, http.StatusNotFound, "Wizard session not found")
		return
	}

	var patch wizard.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := controller.Next(r.Context(), patch); err != nil {
		switch {
		case errors.Is(err, wizard.ErrSubmitInFlight):
			s.errorResponse(w, http.StatusConflict, err.Error())
		case errors.Is(err, wizard.ErrSessionClosed):
			s.errorResponse(w, http.StatusGone, err.Error())
		case errors.Is(err, wizard.ErrNoSelection):
			s.errorResponse(w, http.StatusBadRequest, err.Error())
		default:
			s.errorResponse(w, HTTPStatus(err), err.Error())
		}
		return
	}

	s.jsonResponse(w, http.StatusOK, s.sessionResponse(sessionID, controller))
}

// handleWizardBack moves the session to the previous step.
func (s *Server) handleWizardBack(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID")
		return
	}

	controller := s.getSession(sessionID)
	if controller == nil {
		s.errorResponse(w, http.StatusNotFound, "Wizard session not found")
		return
	}

	controller.Back()
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(sessionID, controller))
}

// handleWizardCancel discards the session's data and removes the session.
func (s *Server) handleWizardCancel(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID")
		return
	}

	controller := s.getSession(sessionID)
	if controller == nil {
		s.errorResponse(w, http.StatusNotFound, "Wizard session not found")
		return
	}

	controller.Cancel()

	s.sessionsMu.Lock()
	delete(s.sessions, sessionID)
	s.sessionsMu.Unlock()

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
