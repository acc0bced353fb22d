package core

import "errors"

var (
	// ErrValidation marks bad caller input: empty text, invalid chunk params.
	ErrValidation = errors.New("validation error")

	// ErrProvider marks a failed embedding or LLM call during a mandatory
	// stage. Optional stages degrade instead of surfacing this.
	ErrProvider = errors.New("provider error")

	// ErrStore marks a failed vector-index or graph-store call.
	ErrStore = errors.New("store error")

	// ErrPartialIngest marks an ingestion that committed vector data but not
	// graph data. The caller may retry with the same document_id/feature_id:
	// all graph writes are idempotent merges.
	ErrPartialIngest = errors.New("partial ingestion")
)
