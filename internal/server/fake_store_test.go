package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/career-wizard/internal/hierarchy"
	"github.com/jonathan/career-wizard/internal/wizard"
)

// fakeStore is an in-memory nodeStore for handler tests.
type fakeStore struct {
	mu      sync.Mutex
	nodes   map[uuid.UUID]*hierarchy.Node
	updates map[uuid.UUID]*hierarchy.UpdateRecord

	failCreateUpdate bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nodes:   make(map[uuid.UUID]*hierarchy.Node),
		updates: make(map[uuid.UUID]*hierarchy.UpdateRecord),
	}
}

func (f *fakeStore) addNode(nodeType string, meta map[string]any) *hierarchy.Node {
	f.mu.Lock()
	defer f.mu.Unlock()
	node := &hierarchy.Node{
		ID:        uuid.New(),
		Type:      nodeType,
		Meta:      meta,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.nodes[node.ID] = node
	return node
}

func (f *fakeStore) GetNode(_ context.Context, id uuid.UUID) (*hierarchy.Node, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	node, ok := f.nodes[id]
	if !ok {
		return nil, &ErrNodeNotFound{NodeID: id}
	}
	copied := *node
	return &copied, nil
}

func (f *fakeStore) UpdateNode(_ context.Context, id uuid.UUID, meta map[string]any) (*hierarchy.Node, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	node, ok := f.nodes[id]
	if !ok {
		return nil, &ErrNodeNotFound{NodeID: id}
	}
	node.Meta = meta
	node.UpdatedAt = time.Now()
	copied := *node
	return &copied, nil
}

func (f *fakeStore) CreateNode(_ context.Context, input hierarchy.CreateNodeInput) (*hierarchy.Node, error) {
	return f.addNode(input.Type, input.Meta), nil
}

func (f *fakeStore) DeleteNode(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.nodes[id]; !ok {
		return &ErrNodeNotFound{NodeID: id}
	}
	delete(f.nodes, id)
	return nil
}

func (f *fakeStore) ListNodes(_ context.Context) ([]hierarchy.Node, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	nodes := make([]hierarchy.Node, 0, len(f.nodes))
	for _, node := range f.nodes {
		nodes = append(nodes, *node)
	}
	return nodes, nil
}

func (f *fakeStore) CreateUpdate(_ context.Context, nodeID uuid.UUID, input hierarchy.CreateUpdateInput) (*hierarchy.UpdateRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreateUpdate {
		return nil, fmt.Errorf("update creation failed")
	}
	if _, ok := f.nodes[nodeID]; !ok {
		return nil, &ErrNodeNotFound{NodeID: nodeID}
	}
	record := &hierarchy.UpdateRecord{
		ID:        uuid.New(),
		NodeID:    nodeID,
		Notes:     input.Notes,
		Meta:      input.Meta,
		CreatedAt: time.Now(),
	}
	f.updates[record.ID] = record
	return record, nil
}

func (f *fakeStore) GetUpdate(_ context.Context, id uuid.UUID) (*hierarchy.UpdateRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.updates[id]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (f *fakeStore) ListUpdates(_ context.Context, nodeID uuid.UUID) ([]hierarchy.UpdateRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var records []hierarchy.UpdateRecord
	for _, record := range f.updates {
		if record.NodeID == nodeID {
			records = append(records, *record)
		}
	}
	return records, nil
}

// newTestServer builds a server around a fake store, without a database.
func newTestServer(store nodeStore) *Server {
	return &Server{
		store:    store,
		sessions: make(map[uuid.UUID]*wizard.Controller),
	}
}
