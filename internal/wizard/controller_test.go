package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-wizard/internal/hierarchy"
)

// fakeBackend is an in-memory hierarchy service for controller tests.
type fakeBackend struct {
	mu      sync.Mutex
	nodes   map[uuid.UUID]*hierarchy.Node
	updates []hierarchy.UpdateRecord

	getNodeErr      error
	updateNodeErr   error
	createUpdateErr error

	// When set, CreateUpdate blocks until the channel is closed.
	createUpdateGate chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{nodes: make(map[uuid.UUID]*hierarchy.Node)}
}

func (f *fakeBackend) addNode(meta map[string]any) uuid.UUID {
	id := uuid.New()
	f.nodes[id] = &hierarchy.Node{ID: id, Type: hierarchy.NodeTypeCareerTransition, Meta: meta}
	return id
}

func (f *fakeBackend) GetNode(_ context.Context, id uuid.UUID) (*hierarchy.Node, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getNodeErr != nil {
		return nil, f.getNodeErr
	}
	node, ok := f.nodes[id]
	if !ok {
		return nil, errors.New("node not found")
	}
	copied := *node
	return &copied, nil
}

func (f *fakeBackend) UpdateNode(_ context.Context, id uuid.UUID, meta map[string]any) (*hierarchy.Node, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateNodeErr != nil {
		return nil, f.updateNodeErr
	}
	node, ok := f.nodes[id]
	if !ok {
		return nil, errors.New("node not found")
	}
	node.Meta = meta
	copied := *node
	return &copied, nil
}

func (f *fakeBackend) CreateNode(_ context.Context, input hierarchy.CreateNodeInput) (*hierarchy.Node, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	node := &hierarchy.Node{ID: id, Type: input.Type, ParentID: input.ParentID, Meta: input.Meta}
	f.nodes[id] = node
	copied := *node
	return &copied, nil
}

func (f *fakeBackend) DeleteNode(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.nodes, id)
	return nil
}

func (f *fakeBackend) ListNodes(_ context.Context) ([]hierarchy.Node, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	nodes := make([]hierarchy.Node, 0, len(f.nodes))
	for _, node := range f.nodes {
		nodes = append(nodes, *node)
	}
	return nodes, nil
}

func (f *fakeBackend) CreateUpdate(_ context.Context, nodeID uuid.UUID, input hierarchy.CreateUpdateInput) (*hierarchy.UpdateRecord, error) {
	if f.createUpdateGate != nil {
		<-f.createUpdateGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createUpdateErr != nil {
		return nil, f.createUpdateErr
	}
	record := hierarchy.UpdateRecord{
		ID:     uuid.New(),
		NodeID: nodeID,
		Notes:  input.Notes,
		Meta:   input.Meta,
	}
	f.updates = append(f.updates, record)
	return &record, nil
}

func newTestController(backend *fakeBackend, meta map[string]any) (*Controller, uuid.UUID) {
	nodeID := backend.addNode(meta)
	return NewController(nodeID, backend, backend), nodeID
}

func TestNext_AdvancesThroughSelectedSteps(t *testing.T) {
	backend := newFakeBackend()
	c, _ := newTestController(backend, nil)

	result, err := c.Next(context.Background(), Patch{
		AppliedToJobs: boolPtr(true),
		Networking:    boolPtr(true),
	})
	require.NoError(t, err)
	assert.Nil(t, result)

	snap := c.Snapshot()
	assert.Equal(t, []Step{StepActivitySelection, StepAppliedToJobs, StepNetworking}, snap.Steps)
	assert.Equal(t, 1, snap.CurrentStep)
	assert.Equal(t, StateActive, snap.State)
}

func TestNext_EmptySelectionRejected(t *testing.T) {
	backend := newFakeBackend()
	c, _ := newTestController(backend, nil)

	_, err := c.Next(context.Background(), Patch{})
	assert.ErrorIs(t, err, ErrNoSelection)

	// Notes alone satisfy the gate.
	result, err := c.Next(context.Background(), Patch{Notes: strPtr("quiet week")})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, backend.updates, 1)
	assert.Equal(t, "quiet week", backend.updates[0].Notes)
}

func TestBack_PreservesEnteredData(t *testing.T) {
	backend := newFakeBackend()
	c, _ := newTestController(backend, nil)

	_, err := c.Next(context.Background(), Patch{AppliedToJobs: boolPtr(true), Networking: boolPtr(true)})
	require.NoError(t, err)

	_, err = c.Next(context.Background(), Patch{
		AppliedToJobsData: map[string]any{"applicationsSubmitted": 4},
	})
	require.NoError(t, err)

	c.Back()

	snap := c.Snapshot()
	assert.Equal(t, 1, snap.CurrentStep)
	assert.Equal(t, map[string]any{"applicationsSubmitted": 4}, snap.Data.AppliedToJobsData)
}

func TestBack_NoOpOnFirstStep(t *testing.T) {
	backend := newFakeBackend()
	c, _ := newTestController(backend, nil)

	c.Back()
	assert.Equal(t, 0, c.Snapshot().CurrentStep)
}

func TestNext_FlagToggleOffResizesAndClamps(t *testing.T) {
	backend := newFakeBackend()
	c, _ := newTestController(backend, nil)
	ctx := context.Background()

	// Select two activities and walk to the middle step
	_, err := c.Next(ctx, Patch{AppliedToJobs: boolPtr(true), BrandBuilding: boolPtr(true)})
	require.NoError(t, err)
	require.Equal(t, 3, len(c.Snapshot().Steps))

	// Go back to selection and toggle brand building off. Re-confirming must
	// shrink the list and keep the index in range without submitting early.
	c.Back()
	result, err := c.Next(ctx, Patch{BrandBuilding: boolPtr(false)})
	require.NoError(t, err)
	assert.Nil(t, result)

	snap := c.Snapshot()
	assert.Equal(t, []Step{StepActivitySelection, StepAppliedToJobs}, snap.Steps)
	assert.Equal(t, 1, snap.CurrentStep)
	assert.Nil(t, snap.Data.BrandBuildingData)
}

func TestNext_FinalStepSubmits(t *testing.T) {
	// Scenario: only appliedToJobs checked, no notes, zero applications added.
	backend := newFakeBackend()
	c, nodeID := newTestController(backend, nil)
	ctx := context.Background()

	_, err := c.Next(ctx, Patch{AppliedToJobs: boolPtr(true), Notes: strPtr("")})
	require.NoError(t, err)

	result, err := c.Next(ctx, Patch{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, nodeID, result.NodeID)

	require.Len(t, backend.updates, 1)
	record := backend.updates[0]
	assert.Equal(t, "", record.Notes)
	assert.Equal(t, true, record.Meta["appliedToJobs"])
	assert.Equal(t, false, record.Meta["applicationMaterials"])
	assert.Equal(t, false, record.Meta["networked"])
	assert.Equal(t, false, record.Meta["brandBuilding"])

	assert.Equal(t, StateSucceeded, c.Snapshot().State)
}

func TestNext_TwoStepScenarioMergesScalarMeta(t *testing.T) {
	// Scenario: appliedToJobs + applicationMaterials, both steps filled,
	// exactly one createUpdate with merged scalar meta and no activity arrays.
	backend := newFakeBackend()
	c, _ := newTestController(backend, nil)
	ctx := context.Background()

	_, err := c.Next(ctx, Patch{AppliedToJobs: boolPtr(true), ApplicationMaterials: boolPtr(true)})
	require.NoError(t, err)

	_, err = c.Next(ctx, Patch{AppliedToJobsData: map[string]any{"applicationsSubmitted": 2}})
	require.NoError(t, err)

	result, err := c.Next(ctx, Patch{ApplicationMaterialsData: map[string]any{
		"resumeCount":        3,
		"hasLinkedInProfile": true,
	}})
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Len(t, backend.updates, 1)
	meta := backend.updates[0].Meta
	assert.Equal(t, 2, meta["applicationsSubmitted"])
	assert.Equal(t, 3, meta["resumeCount"])
	assert.Equal(t, true, meta["hasLinkedInProfile"])
	assert.NotContains(t, meta, "networkingData")
	assert.NotContains(t, meta, "brandBuildingData")
}

func TestNext_CreateUpdateFailureStaysOnLastStep(t *testing.T) {
	backend := newFakeBackend()
	backend.createUpdateErr = errors.New("boom")
	c, _ := newTestController(backend, nil)
	ctx := context.Background()

	_, err := c.Next(ctx, Patch{AppliedToJobs: boolPtr(true)})
	require.NoError(t, err)

	_, err = c.Next(ctx, Patch{})
	require.Error(t, err)

	snap := c.Snapshot()
	assert.Equal(t, StateActive, snap.State)
	assert.Equal(t, 1, snap.CurrentStep)

	// Pressing Continue again after the backend recovers succeeds
	backend.mu.Lock()
	backend.createUpdateErr = nil
	backend.mu.Unlock()

	result, err := c.Next(ctx, Patch{})
	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestNext_RejectsReentrantSubmit(t *testing.T) {
	backend := newFakeBackend()
	backend.createUpdateGate = make(chan struct{})
	c, _ := newTestController(backend, nil)
	ctx := context.Background()

	_, err := c.Next(ctx, Patch{AppliedToJobs: boolPtr(true)})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		result, err := c.Next(ctx, Patch{})
		assert.NoError(t, err)
		assert.NotNil(t, result)
	}()

	// Wait until the first submit is observably in flight
	for c.Snapshot().State != StateSubmitting {
		time.Sleep(time.Millisecond)
	}

	_, err = c.Next(ctx, Patch{})
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(backend.createUpdateGate)
	<-done

	// Exactly one update record despite the second attempt
	require.Len(t, backend.updates, 1)

	_, err = c.Next(ctx, Patch{})
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestCancel_DiscardsData(t *testing.T) {
	backend := newFakeBackend()
	c, _ := newTestController(backend, nil)

	_, err := c.Next(context.Background(), Patch{Networking: boolPtr(true)})
	require.NoError(t, err)

	c.Cancel()

	snap := c.Snapshot()
	assert.Equal(t, StateCancelled, snap.State)
	assert.Equal(t, Data{}, snap.Data)

	_, err = c.Next(context.Background(), Patch{})
	assert.ErrorIs(t, err, ErrSessionClosed)
}
