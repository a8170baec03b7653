package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/career-wizard/internal/db"
	"github.com/jonathan/career-wizard/internal/hierarchy"
	"github.com/jonathan/career-wizard/internal/schemas"
)

// nodeStore is the persistence surface the node and wizard handlers depend
// on. The database-backed implementation is dbStore; tests substitute fakes.
type nodeStore interface {
	hierarchy.NodeAPI
	hierarchy.UpdatesAPI
	GetUpdate(ctx context.Context, id uuid.UUID) (*hierarchy.UpdateRecord, error)
	ListUpdates(ctx context.Context, nodeID uuid.UUID) ([]hierarchy.UpdateRecord, error)
}

// dbStore adapts the database layer to the hierarchy contract the wizard
// controller consumes, validating metadata documents before they persist.
type dbStore struct {
	db *db.DB
}

func newDBStore(database *db.DB) *dbStore {
	return &dbStore{db: database}
}

func toHierarchyNode(n *db.Node) *hierarchy.Node {
	if n == nil {
		return nil
	}
	return &hierarchy.Node{
		ID:        n.ID,
		Type:      n.Type,
		ParentID:  n.ParentID,
		Meta:      n.Meta,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func toHierarchyUpdate(u *db.UpdateRecord) *hierarchy.UpdateRecord {
	if u == nil {
		return nil
	}
	return &hierarchy.UpdateRecord{
		ID:        u.ID,
		NodeID:    u.NodeID,
		Notes:     u.Notes,
		Meta:      u.Meta,
		CreatedAt: u.CreatedAt,
	}
}

func (s *dbStore) GetNode(ctx context.Context, id uuid.UUID) (*hierarchy.Node, error) {
	node, err := s.db.GetNodeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, &ErrNodeNotFound{NodeID: id}
	}
	return toHierarchyNode(node), nil
}

func (s *dbStore) UpdateNode(ctx context.Context, id uuid.UUID, meta map[string]any) (*hierarchy.Node, error) {
	if err := schemas.ValidateNodeMeta(meta); err != nil {
		return nil, err
	}
	node, err := s.db.UpdateNodeMeta(ctx, id, meta)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, &ErrNodeNotFound{NodeID: id}
	}
	return toHierarchyNode(node), nil
}

func (s *dbStore) CreateNode(ctx context.Context, input hierarchy.CreateNodeInput) (*hierarchy.Node, error) {
	if input.Meta != nil {
		if err := schemas.ValidateNodeMeta(input.Meta); err != nil {
			return nil, err
		}
	}
	node, err := s.db.CreateNode(ctx, db.NodeInput{
		Type:     input.Type,
		ParentID: input.ParentID,
		Meta:     input.Meta,
	})
	if err != nil {
		return nil, err
	}
	return toHierarchyNode(node), nil
}

func (s *dbStore) DeleteNode(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.db.DeleteNode(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return &ErrNodeNotFound{NodeID: id}
	}
	return nil
}

func (s *dbStore) ListNodes(ctx context.Context) ([]hierarchy.Node, error) {
	rows, err := s.db.ListNodes(ctx, db.ListNodesOptions{})
	if err != nil {
		return nil, err
	}
	nodes := make([]hierarchy.Node, 0, len(rows))
	for i := range rows {
		nodes = append(nodes, *toHierarchyNode(&rows[i]))
	}
	return nodes, nil
}

func (s *dbStore) CreateUpdate(ctx context.Context, nodeID uuid.UUID, input hierarchy.CreateUpdateInput) (*hierarchy.UpdateRecord, error) {
	if err := schemas.ValidateUpdateMeta(input.Meta); err != nil {
		return nil, err
	}
	node, err := s.db.GetNodeByID(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, &ErrNodeNotFound{NodeID: nodeID}
	}
	record, err := s.db.CreateUpdate(ctx, nodeID, db.UpdateInput{
		Notes: input.Notes,
		Meta:  input.Meta,
	})
	if err != nil {
		return nil, err
	}
	return toHierarchyUpdate(record), nil
}

func (s *dbStore) GetUpdate(ctx context.Context, id uuid.UUID) (*hierarchy.UpdateRecord, error) {
	record, err := s.db.GetUpdateByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toHierarchyUpdate(record), nil
}

func (s *dbStore) ListUpdates(ctx context.Context, nodeID uuid.UUID) ([]hierarchy.UpdateRecord, error) {
	rows, err := s.db.ListUpdatesByNode(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	records := make([]hierarchy.UpdateRecord, 0, len(rows))
	for i := range rows {
		records = append(records, *toHierarchyUpdate(&rows[i]))
	}
	return records, nil
}
