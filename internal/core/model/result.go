package model

// IngestSummary reports what a single ingestion call produced.
type IngestSummary struct {
	Status     string `json:"status"`
	FeatureID  string `json:"feature_id"`
	DocumentID string `json:"document_id"`
	Chunks     int    `json:"chunks"`
	Collection string `json:"collection"`
}

// RetrievalResult is the document-id variant of the query pipeline: the
// supporting document ids plus the raw text context, with no synthesis.
type RetrievalResult struct {
	DocumentIDs []string `json:"document_ids"`
	Context     string   `json:"context"`
}

// QueryResult is the rich variant: a synthesized answer grounded in both the
// vector-search context and the graph relations that survived filtering.
type QueryResult struct {
	Answer      string           `json:"answer"`
	Entities    []string         `json:"entities"`
	Relations   []RelationRecord `json:"graph_relations"`
	DocumentIDs []string         `json:"document_ids"`
	Context     string           `json:"context"`
}
