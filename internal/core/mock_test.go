package core

import (
	"context"
	"errors"

	"github.com/Irfan-KV/dev-twin/internal/core/model"
)

type MockLLM struct {
	ResponseQueue []string
	Err           error
	Prompts       []string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.ResponseQueue) == 0 {
		return "", errors.New("mock llm: response queue exhausted")
	}
	resp := m.ResponseQueue[0]
	m.ResponseQueue = m.ResponseQueue[1:]
	return resp, nil
}

type MockEmbedder struct {
	Vector []float32
	Err    error
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Vector, nil
}

func (m *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	vecs := make([][]float32, len(texts))
	for i := range texts {
		vecs[i] = m.Vector
	}
	return vecs, nil
}

type MockVectorIndex struct {
	Upserted  []model.EmbeddedChunk
	Hits      []model.ChunkHit
	UpsertErr error
	SearchErr error

	SearchedTopK    int
	SearchedFeature string
}

func (m *MockVectorIndex) UpsertChunks(ctx context.Context, chunks []model.EmbeddedChunk) error {
	if m.UpsertErr != nil {
		return m.UpsertErr
	}
	m.Upserted = append(m.Upserted, chunks...)
	return nil
}

func (m *MockVectorIndex) Search(ctx context.Context, vec []float32, topK int, featureID string) ([]model.ChunkHit, error) {
	m.SearchedTopK = topK
	m.SearchedFeature = featureID
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.Hits, nil
}

func (m *MockVectorIndex) Collection() string {
	return "graph_rag_demo"
}

type MockGraphStore struct {
	Entities  []model.Entity
	Relations []model.Relation
	DocID     string
	FeatureID string
	UpsertErr error

	Labels    []string
	LabelsErr error

	Touching     []model.RelationRecord
	TouchingErr  error
	TouchedNames []string
}

func (m *MockGraphStore) UpsertKnowledge(ctx context.Context, entities []model.Entity, relations []model.Relation, documentID, featureID string) error {
	if m.UpsertErr != nil {
		return m.UpsertErr
	}
	m.Entities = append(m.Entities, entities...)
	m.Relations = append(m.Relations, relations...)
	m.DocID = documentID
	m.FeatureID = featureID
	return nil
}

func (m *MockGraphStore) RelationsTouching(ctx context.Context, names []string) ([]model.RelationRecord, error) {
	m.TouchedNames = append(m.TouchedNames, names...)
	if m.TouchingErr != nil {
		return nil, m.TouchingErr
	}
	return m.Touching, nil
}

func (m *MockGraphStore) KnownEntityLabels(ctx context.Context) ([]string, error) {
	if m.LabelsErr != nil {
		return nil, m.LabelsErr
	}
	return m.Labels, nil
}
