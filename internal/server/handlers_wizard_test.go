package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-wizard/internal/hierarchy"
	"github.com/jonathan/career-wizard/internal/wizard"
)

func startSession(t *testing.T, s *Server, nodeID uuid.UUID) SessionResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/nodes/"+nodeID.String()+"/wizard", nil)
	req.SetPathValue("id", nodeID.String())
	w := httptest.NewRecorder()

	s.handleStartWizard(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func postNext(t *testing.T, s *Server, sessionID uuid.UUID, patch wizard.Patch) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(patch)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/wizard/"+sessionID.String()+"/next", bytes.NewReader(body))
	req.SetPathValue("id", sessionID.String())
	w := httptest.NewRecorder()

	s.handleWizardNext(w, req)
	return w
}

func boolPtr(b bool) *bool { return &b }

func TestHandleStartWizard(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(store)
	node := store.addNode(hierarchy.NodeTypeCareerTransition, nil)

	resp := startSession(t, s, node.ID)

	assert.Equal(t, node.ID, resp.NodeID)
	assert.Equal(t, wizard.StateActive, resp.Snapshot.State)
	assert.Equal(t, []wizard.Step{wizard.StepActivitySelection}, resp.Snapshot.Steps)
}

func TestHandleStartWizard_NodeMissing(t *testing.T) {
	s := newTestServer(newFakeStore())
	missing := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/nodes/"+missing.String()+"/wizard", nil)
	req.SetPathValue("id", missing.String())
	w := httptest.NewRecorder()

	s.handleStartWizard(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWizardSession_FullWalk(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(store)
	node := store.addNode(hierarchy.NodeTypeCareerTransition, nil)

	session := startSession(t, s, node.ID)

	// Select networking, advance to the networking step.
	w := postNext(t, s, session.SessionID, wizard.Patch{Networking: boolPtr(true)})
	require.Equal(t, http.StatusOK, w.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []wizard.Step{wizard.StepActivitySelection, wizard.StepNetworking}, resp.Snapshot.Steps)
	assert.Equal(t, 1, resp.Snapshot.CurrentStep)

	// Confirm the final step; the session submits.
	w = postNext(t, s, session.SessionID, wizard.Patch{
		NetworkingData: []wizard.NetworkingActivity{
			{Type: wizard.NetworkingAttendedEvent, Event: "Go meetup"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, wizard.StateSucceeded, resp.Snapshot.State)
	require.NotNil(t, resp.Snapshot.Result)

	record, err := store.GetUpdate(context.Background(), resp.Snapshot.Result.UpdateID)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, node.ID, record.NodeID)
	assert.Equal(t, true, record.Meta["networked"])

	// The node meta gained the appended networking activity.
	updated, err := store.GetNode(context.Background(), node.ID)
	require.NoError(t, err)
	assert.Contains(t, updated.Meta, "networkingData")
}

func TestHandleWizardNext_EmptySelection(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(store)
	node := store.addNode(hierarchy.NodeTypeCareerTransition, nil)
	session := startSession(t, s, node.ID)

	w := postNext(t, s, session.SessionID, wizard.Patch{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.updates)
}

func TestHandleWizardNext_ClosedSession(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(store)
	node := store.addNode(hierarchy.NodeTypeCareerTransition, nil)
	session := startSession(t, s, node.ID)

	// Notes-only walk submits immediately on the single step.
	notes := "wrapped up"
	w := postNext(t, s, session.SessionID, wizard.Patch{Notes: &notes})
	require.Equal(t, http.StatusOK, w.Code)

	w = postNext(t, s, session.SessionID, wizard.Patch{})
	assert.Equal(t, http.StatusGone, w.Code)
}

func TestHandleWizardNext_SubmitFailureStaysActive(t *testing.T) {
	store := newFakeStore()
	store.failCreateUpdate = true
	s := newTestServer(store)
	node := store.addNode(hierarchy.NodeTypeCareerTransition, nil)
	session := startSession(t, s, node.ID)

	notes := "attempt"
	w := postNext(t, s, session.SessionID, wizard.Patch{Notes: &notes})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// The session survives for a retry.
	store.failCreateUpdate = false
	w = postNext(t, s, session.SessionID, wizard.Patch{})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleWizardBack(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(store)
	node := store.addNode(hierarchy.NodeTypeCareerTransition, nil)
	session := startSession(t, s, node.ID)

	w := postNext(t, s, session.SessionID, wizard.Patch{AppliedToJobs: boolPtr(true)})
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/wizard/"+session.SessionID.String()+"/back", nil)
	req.SetPathValue("id", session.SessionID.String())
	rec := httptest.NewRecorder()
	s.handleWizardBack(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Snapshot.CurrentStep)
	assert.True(t, resp.Snapshot.Data.AppliedToJobs, "data is retained when stepping back")
}

func TestHandleWizardCancel(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(store)
	node := store.addNode(hierarchy.NodeTypeCareerTransition, nil)
	session := startSession(t, s, node.ID)

	req := httptest.NewRequest(http.MethodPost, "/wizard/"+session.SessionID.String()+"/cancel", nil)
	req.SetPathValue("id", session.SessionID.String())
	w := httptest.NewRecorder()
	s.handleWizardCancel(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// The session is gone afterwards.
	req = httptest.NewRequest(http.MethodGet, "/wizard/"+session.SessionID.String(), nil)
	req.SetPathValue("id", session.SessionID.String())
	w = httptest.NewRecorder()
	s.handleGetWizard(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Nothing persisted.
	assert.Empty(t, store.updates)
}

func TestHandleGetWizard_InvalidID(t *testing.T) {
	s := newTestServer(newFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/wizard/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")
	w := httptest.NewRecorder()
	s.handleGetWizard(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
