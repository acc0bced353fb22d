package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Irfan-KV/dev-twin/internal/core/model"
)

func TestUpsertKnowledge_FixedSchema(t *testing.T) {
	d := &MockDriver{}
	s := NewStore(d, FixedLabelSchema)

	entities := []model.Entity{{Name: "Alice", Label: "Person"}}
	relations := []model.Relation{{Head: "Alice", Type: "WORKED_ON", Tail: "Login", Explanation: "built it"}}

	err := s.UpsertKnowledge(context.Background(), entities, relations, "d1", "f1")
	require.NoError(t, err)
	require.Len(t, d.Queries, 2)

	assert.Equal(t, MergeEntityQuery, d.Queries[0])
	assert.Equal(t, "Alice", d.Params[0]["name"])
	assert.Equal(t, "d1", d.Params[0]["document_id"])
	assert.Equal(t, "f1", d.Params[0]["feature_id"])

	// Fixed schema never interpolates the relation type.
	assert.Equal(t, MergeRelationQuery, d.Queries[1])
	assert.Equal(t, "WORKED_ON", d.Params[1]["type"])
}

func TestUpsertKnowledge_PerEntitySchema(t *testing.T) {
	d := &MockDriver{}
	s := NewStore(d, PerEntityLabelSchema)

	relations := []model.Relation{{Head: "Alice", Type: "WORKED_ON", Tail: "Login"}}
	err := s.UpsertKnowledge(context.Background(), nil, relations, "d1", "f1")
	require.NoError(t, err)
	require.Len(t, d.Queries, 1)
	assert.Contains(t, d.Queries[0], "[r:WORKED_ON]")
}

func TestUpsertKnowledge_PerEntitySchemaRejectsUnsafeType(t *testing.T) {
	d := &MockDriver{}
	s := NewStore(d, PerEntityLabelSchema)

	relations := []model.Relation{{Head: "a", Type: "x]->(y) DETACH DELETE y //", Tail: "b"}}
	err := s.UpsertKnowledge(context.Background(), nil, relations, "d1", "f1")
	require.NoError(t, err)
	require.Len(t, d.Queries, 1)

	// Unsafe identifiers fall back to the fixed parameterized edge.
	assert.Equal(t, MergeRelationQuery, d.Queries[0])
	assert.NotContains(t, d.Queries[0], "DETACH DELETE")
}

func TestUpsertKnowledge_StoreError(t *testing.T) {
	d := &MockDriver{Err: errors.New("bolt: connection refused")}
	s := NewStore(d, FixedLabelSchema)

	err := s.UpsertKnowledge(context.Background(), []model.Entity{{Name: "Alice"}}, nil, "d1", "f1")
	assert.Error(t, err)
}

func TestRelationsTouching(t *testing.T) {
	d := &MockDriver{
		MockResult: neo4j.EagerResult{
			Records: []*neo4j.Record{
				{
					Keys:   []string{"source", "source_doc_id", "relation_type", "target", "target_doc_id"},
					Values: []any{"Alice", "d1", "WORKED_ON", "Login", "d2"},
				},
			},
		},
	}
	s := NewStore(d, FixedLabelSchema)

	recs, err := s.RelationsTouching(context.Background(), []string{"Alice"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, model.RelationRecord{
		Source: "Alice", SourceDocID: "d1", Type: "WORKED_ON", Target: "Login", TargetDocID: "d2",
	}, recs[0])
	assert.Equal(t, []string{"Alice"}, d.Params[0]["names"])
}

func TestRelationsTouching_PerEntitySchemaKeepsFallbackType(t *testing.T) {
	d := &MockDriver{
		MockResult: neo4j.EagerResult{
			Records: []*neo4j.Record{
				{
					Keys:   []string{"source", "source_doc_id", "relation_type", "target", "target_doc_id"},
					Values: []any{"a", "d1", "x_y_z", "b", "d2"},
				},
			},
		},
	}
	s := NewStore(d, PerEntityLabelSchema)

	recs, err := s.RelationsTouching(context.Background(), []string{"a"})
	require.NoError(t, err)
	require.Len(t, d.Queries, 1)

	// Relations with unsafe types are written as fixed RELATION edges, so the
	// dynamic read-back must prefer r.type over the edge's structural type.
	assert.Equal(t, RelationsTouchingDynamicQuery, d.Queries[0])
	assert.Contains(t, d.Queries[0], "coalesce(r.type, type(r))")
	require.Len(t, recs, 1)
	assert.Equal(t, "x_y_z", recs[0].Type)
}

func TestUpsertKnowledge_PerEntitySchemaSetsTypeProperty(t *testing.T) {
	d := &MockDriver{}
	s := NewStore(d, PerEntityLabelSchema)

	relations := []model.Relation{{Head: "Alice", Type: "WORKED_ON", Tail: "Login"}}
	err := s.UpsertKnowledge(context.Background(), nil, relations, "d1", "f1")
	require.NoError(t, err)
	require.Len(t, d.Queries, 1)

	// Dynamic edges carry r.type too so both read-back queries agree.
	assert.Contains(t, d.Queries[0], "r.type = $type")
	assert.Equal(t, "WORKED_ON", d.Params[0]["type"])
}

func TestRelationsTouching_EmptyNames(t *testing.T) {
	d := &MockDriver{}
	s := NewStore(d, FixedLabelSchema)

	recs, err := s.RelationsTouching(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Empty(t, d.Queries, "no query should be issued for an empty name set")
}

func TestKnownEntityLabels(t *testing.T) {
	d := &MockDriver{
		MockResult: neo4j.EagerResult{
			Records: []*neo4j.Record{
				{Keys: []string{"name"}, Values: []any{"Alice"}},
				{Keys: []string{"name"}, Values: []any{"Bob"}},
			},
		},
	}
	s := NewStore(d, FixedLabelSchema)

	names, err := s.KnownEntityLabels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, names)
}
