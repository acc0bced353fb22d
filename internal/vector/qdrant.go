package vector

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/qdrant/go-client/qdrant"

	"github.com/Irfan-KV/dev-twin/internal/core/model"
)

// Store wraps a Qdrant collection holding embedded document chunks.
type Store struct {
	client     *qdrant.Client
	collection string
	dimension  int
}

type Options struct {
	Host       string
	Port       int
	APIKey     string
	UseTLS     bool
	Collection string
	Dimension  int
}

func NewStore(opts Options) (*Store, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   opts.Host,
		Port:   opts.Port,
		APIKey: opts.APIKey,
		UseTLS: opts.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}
	return &Store{
		client:     client,
		collection: opts.Collection,
		dimension:  opts.Dimension,
	}, nil
}

func (s *Store) Collection() string {
	return s.collection
}

func (s *Store) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// EnsureCollection creates the collection and its payload indexes if they do
// not exist yet. Idempotent.
func (s *Store) EnsureCollection(ctx context.Context) error {
	collections, err := s.client.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	for _, name := range collections {
		if name == s.collection {
			return nil
		}
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(s.dimension),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection %s: %w", s.collection, err)
	}

	// Keyword indexes keep filtered search fast once the collection grows.
	for _, field := range []string{"feature_id", "document_id"} {
		_, err := s.client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
			CollectionName: s.collection,
			FieldName:      field,
			FieldType:      qdrant.FieldType_FieldTypeKeyword.Enum(),
		})
		if err != nil {
			return fmt.Errorf("failed to create payload index for %s: %w", field, err)
		}
	}

	return nil
}

// UpsertChunks writes embedded chunks as points. Point ids come in with the
// chunks, so the backoff retry rewrites the same points rather than
// duplicating them.
func (s *Store) UpsertChunks(ctx context.Context, chunks []model.EmbeddedChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	for i, c := range chunks {
		if len(c.Vector) != s.dimension {
			return fmt.Errorf("%w: chunk %d has %d dimensions, expected %d",
				ErrDimensionMismatch, i, len(c.Vector), s.dimension)
		}
	}

	points := buildPoints(chunks)

	operation := func() error {
		_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: s.collection,
			Points:         points,
		})
		return err
	}
	if err := backoff.Retry(operation, backoff.WithContext(newBackOff(), ctx)); err != nil {
		return fmt.Errorf("failed to upsert %d points: %w", len(points), err)
	}
	return nil
}

// Search returns the topK nearest chunks, optionally restricted to a feature.
func (s *Store) Search(ctx context.Context, vec []float32, topK int, featureID string) ([]model.ChunkHit, error) {
	if len(vec) != s.dimension {
		return nil, fmt.Errorf("%w: query has %d dimensions, expected %d",
			ErrDimensionMismatch, len(vec), s.dimension)
	}

	var filter *qdrant.Filter
	if featureID != "" {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{qdrant.NewMatch("feature_id", featureID)},
		}
	}

	results, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(vec...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(topK)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search chunks: %w", err)
	}

	hits := make([]model.ChunkHit, 0, len(results))
	for _, r := range results {
		hits = append(hits, model.ChunkHit{
			Text:       r.Payload["chunk"].GetStringValue(),
			DocumentID: r.Payload["document_id"].GetStringValue(),
			Score:      r.Score,
		})
	}
	return hits, nil
}

func buildPoints(chunks []model.EmbeddedChunk) []*qdrant.PointStruct {
	points := make([]*qdrant.PointStruct, len(chunks))
	for i, c := range chunks {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(c.ID),
			Vectors: qdrant.NewVectors(c.Vector...),
			Payload: qdrant.NewValueMap(map[string]any{
				"chunk":       c.Text,
				"feature_id":  c.FeatureID,
				"document_id": c.DocumentID,
			}),
		}
	}
	return points
}

func newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 30 * time.Second
	return b
}
