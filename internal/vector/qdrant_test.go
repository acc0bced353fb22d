package vector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Irfan-KV/dev-twin/internal/core/model"
)

func TestUpsertChunks_DimensionMismatch(t *testing.T) {
	s := &Store{collection: "graph_rag_demo", dimension: 4}

	err := s.UpsertChunks(context.Background(), []model.EmbeddedChunk{
		{ID: "00000000-0000-0000-0000-000000000001", Vector: []float32{1, 2}},
	})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestSearch_DimensionMismatch(t *testing.T) {
	s := &Store{collection: "graph_rag_demo", dimension: 4}

	_, err := s.Search(context.Background(), []float32{1, 2}, 3, "")
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestUpsertChunks_Empty(t *testing.T) {
	s := &Store{collection: "graph_rag_demo", dimension: 4}
	assert.NoError(t, s.UpsertChunks(context.Background(), nil))
}

func TestBuildPoints(t *testing.T) {
	chunks := []model.EmbeddedChunk{
		{
			ID:         "00000000-0000-0000-0000-000000000001",
			Text:       "Alice worked on the login feature",
			Vector:     []float32{0.1, 0.2},
			DocumentID: "d1",
			FeatureID:  "f1",
		},
	}

	points := buildPoints(chunks)
	require.Len(t, points, 1)

	payload := points[0].GetPayload()
	assert.Equal(t, "Alice worked on the login feature", payload["chunk"].GetStringValue())
	assert.Equal(t, "d1", payload["document_id"].GetStringValue())
	assert.Equal(t, "f1", payload["feature_id"].GetStringValue())
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", points[0].GetId().GetUuid())
}
