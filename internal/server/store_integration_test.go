//go:build integration
// +build integration

package server

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-wizard/internal/db"
	"github.com/jonathan/career-wizard/internal/hierarchy"
	"github.com/jonathan/career-wizard/internal/schemas"
)

func setupTestStore(t *testing.T) *dbStore {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test")
	}
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, databaseURL)
	require.NoError(t, err)
	require.NoError(t, database.EnsureSchema(ctx))
	t.Cleanup(database.Close)
	return newDBStore(database)
}

func TestDBStore_NodeRoundTrip_Integration(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	node, err := store.CreateNode(ctx, hierarchy.CreateNodeInput{
		Type: hierarchy.NodeTypeCareerTransition,
		Meta: map[string]any{"title": "Integration node"},
	})
	require.NoError(t, err)
	defer func() { _ = store.DeleteNode(ctx, node.ID) }()

	fetched, err := store.GetNode(ctx, node.ID)
	require.NoError(t, err)
	assert.Equal(t, "Integration node", fetched.Meta["title"])

	updated, err := store.UpdateNode(ctx, node.ID, map[string]any{"title": "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Meta["title"])
}

func TestDBStore_RejectsInvalidUpdateMeta_Integration(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	node, err := store.CreateNode(ctx, hierarchy.CreateNodeInput{
		Type: hierarchy.NodeTypeCareerTransition,
	})
	require.NoError(t, err)
	defer func() { _ = store.DeleteNode(ctx, node.ID) }()

	// Activity arrays are node-meta shape, not update-meta shape.
	_, err = store.CreateUpdate(ctx, node.ID, hierarchy.CreateUpdateInput{
		Notes: "bad meta",
		Meta: map[string]any{
			"appliedToJobs":        true,
			"applicationMaterials": false,
			"networked":            false,
			"brandBuilding":        false,
			"networkingData":       []any{map[string]any{"event": "x"}},
		},
	})
	require.Error(t, err)

	var verr *schemas.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestDBStore_CreateUpdate_Integration(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	node, err := store.CreateNode(ctx, hierarchy.CreateNodeInput{
		Type: hierarchy.NodeTypeCareerTransition,
	})
	require.NoError(t, err)
	defer func() { _ = store.DeleteNode(ctx, node.ID) }()

	record, err := store.CreateUpdate(ctx, node.ID, hierarchy.CreateUpdateInput{
		Notes: "integration update",
		Meta: map[string]any{
			"appliedToJobs":        true,
			"applicationMaterials": false,
			"networked":            false,
			"brandBuilding":        false,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, node.ID, record.NodeID)

	records, err := store.ListUpdates(ctx, node.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, record.ID, records[0].ID)

	fetched, err := store.GetUpdate(ctx, record.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "integration update", fetched.Notes)
}
