package graphsource

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/catalog"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/database"
	db "github.com/mkd-neo4j/neo4j-claims-fraud/internal/database/mocks"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/model"
	"github.com/mkd-neo4j/neo4j-claims-fraud/tools"
)

func record(cols map[string]any) *neo4j.Record {
	r := &neo4j.Record{}
	for k, v := range cols {
		r.Keys = append(r.Keys, k)
		r.Values = append(r.Values, v)
	}
	return r
}

func newTestSource(t *testing.T, mockDB *db.MockService) *Neo4jSource {
	t.Helper()
	c, err := catalog.Load(tools.ConfigFiles, "../../tools/config/patterns")
	require.NoError(t, err)
	return NewNeo4jSource(mockDB, c)
}

func TestNeo4jSource_FetchAllNodes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := db.NewMockService(ctrl)
	mockDB.EXPECT().
		ExecuteReadQuery(gomock.Any(), allNodesQuery, gomock.Nil()).
		Return([]*neo4j.Record{
			record(map[string]any{"id": "DOC-X", "label": "Doctor", "name": "Elite Rehab Center", "flagged": true, "is_fraud": nil, "amount": nil}),
			record(map[string]any{"id": "CLM-101", "label": "Claim", "name": nil, "flagged": nil, "is_fraud": false, "amount": int64(45000)}),
		}, nil)

	nodes, err := newTestSource(t, mockDB).FetchAllNodes(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	assert.Equal(t, "Elite Rehab Center", *nodes[0].Name)
	assert.True(t, *nodes[0].Flagged)
	assert.Nil(t, nodes[0].IsFraud)
	assert.Nil(t, nodes[0].Amount)

	assert.Nil(t, nodes[1].Name)
	assert.Nil(t, nodes[1].Flagged)
	assert.False(t, *nodes[1].IsFraud)
	assert.Equal(t, 45000.0, *nodes[1].Amount)
}

func TestNeo4jSource_FetchAllEdges(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := db.NewMockService(ctrl)
	mockDB.EXPECT().
		ExecuteReadQuery(gomock.Any(), allEdgesQuery, gomock.Nil()).
		Return([]*neo4j.Record{
			record(map[string]any{"source": "Driver-A", "target": "CLM-101", "rel_type": "FILED"}),
		}, nil)

	edges, err := newTestSource(t, mockDB).FetchAllEdges(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.EdgeRecord{{Source: "Driver-A", Target: "CLM-101", RelType: model.RelFiled}}, edges)
}

func TestNeo4jSource_ConnectivityErrorIsUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := db.NewMockService(ctrl)
	mockDB.EXPECT().
		ExecuteReadQuery(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("%w: connection refused", database.ErrConnectivity))

	_, err := newTestSource(t, mockDB).FetchAllNodes(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNeo4jSource_QueryErrorIsNotUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := db.NewMockService(ctrl)
	mockDB.EXPECT().
		ExecuteReadQuery(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("syntax error"))

	_, err := newTestSource(t, mockDB).FetchAllEdges(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnavailable))
}

func TestNeo4jSource_RunPatternQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("defaults are bound from the catalogue", func(t *testing.T) {
		mockDB := db.NewMockService(ctrl)
		mockDB.EXPECT().
			ExecuteReadQuery(gomock.Any(), gomock.Any(), map[string]any{"minClaimants": int64(3)}).
			Return([]*neo4j.Record{
				record(map[string]any{"entity_id": "S-1", "entity": "Shady", "connected_count": int64(6), "flagged": true}),
			}, nil)

		rows, err := newTestSource(t, mockDB).RunPatternQuery(context.Background(), PatternSpec{ID: PatternSharedRepairShop})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 6, rows[0].Int("connected_count"))
	})

	t.Run("missing claim id never reaches the database", func(t *testing.T) {
		mockDB := db.NewMockService(ctrl)

		_, err := newTestSource(t, mockDB).RunPatternQuery(context.Background(), PatternSpec{ID: PatternClaimContext})
		assert.ErrorIs(t, err, catalog.ErrMissingParameter)
	})

	t.Run("unknown pattern", func(t *testing.T) {
		mockDB := db.NewMockService(ctrl)

		_, err := newTestSource(t, mockDB).RunPatternQuery(context.Background(), PatternSpec{ID: "nope"})
		assert.ErrorIs(t, err, catalog.ErrUnknownPattern)
	})
}

func TestNeo4jSource_FetchEgoNetwork(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("expands hop by hop", func(t *testing.T) {
		mockDB := db.NewMockService(ctrl)
		gomock.InOrder(
			mockDB.EXPECT().
				ExecuteReadQuery(gomock.Any(), nodesByIDQuery, map[string]any{"ids": []string{"P-1"}}).
				Return([]*neo4j.Record{record(map[string]any{"id": "P-1", "label": "Person"})}, nil),
			mockDB.EXPECT().
				ExecuteReadQuery(gomock.Any(), gomock.Any(), map[string]any{"ids": []string{"P-1"}}).
				Return([]*neo4j.Record{record(map[string]any{"id": "CLM-1", "label": "Claim"})}, nil),
			mockDB.EXPECT().
				ExecuteReadQuery(gomock.Any(), gomock.Any(), map[string]any{"ids": []string{"CLM-1"}}).
				Return([]*neo4j.Record{
					record(map[string]any{"id": "P-1", "label": "Person"}),
					record(map[string]any{"id": "S-1", "label": "Shop", "flagged": true}),
				}, nil),
			mockDB.EXPECT().
				ExecuteReadQuery(gomock.Any(), edgesAmongQuery, map[string]any{"ids": []string{"P-1", "CLM-1", "S-1"}}).
				Return([]*neo4j.Record{
					record(map[string]any{"source": "P-1", "target": "CLM-1", "rel_type": "FILED"}),
					record(map[string]any{"source": "P-1", "target": "CLM-1", "rel_type": "FILED"}),
					record(map[string]any{"source": "CLM-1", "target": "S-1", "rel_type": "REPAIRED_AT"}),
				}, nil),
		)

		ego, err := newTestSource(t, mockDB).FetchEgoNetwork(context.Background(), "P-1", 2, 0)
		require.NoError(t, err)
		require.Len(t, ego.Nodes, 3)
		assert.Equal(t, model.NodeTypeRepairShop, ego.Nodes[2].Type)
		assert.True(t, ego.Nodes[2].Flagged)
		assert.Len(t, ego.Edges, 2)
	})

	t.Run("unknown centre is empty", func(t *testing.T) {
		mockDB := db.NewMockService(ctrl)
		mockDB.EXPECT().
			ExecuteReadQuery(gomock.Any(), nodesByIDQuery, gomock.Any()).
			Return([]*neo4j.Record{}, nil)

		ego, err := newTestSource(t, mockDB).FetchEgoNetwork(context.Background(), "X-1", 2, 10)
		require.NoError(t, err)
		assert.True(t, ego.Empty())
	})
}
