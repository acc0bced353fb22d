package model

// EmbeddedChunk pairs a chunk of document text with its embedding vector and a
// pre-generated point id. Point ids are minted before any store call so that
// retrying an upsert rewrites the same points instead of duplicating them.
type EmbeddedChunk struct {
	ID         string
	Text       string
	Vector     []float32
	DocumentID string
	FeatureID  string
}

// ChunkHit is a vector-search result, ordered by descending similarity.
type ChunkHit struct {
	Text       string
	DocumentID string
	Score      float32
}
