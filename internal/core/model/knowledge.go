package model

// Entity is a named concept in the knowledge graph. Identity is the name:
// upserting the same name twice merges into one node.
type Entity struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Relation is a typed, directed link between two entities. Type is normalized
// (whitespace replaced by underscores, restricted to identifier characters) at
// extraction time and must not be re-normalized downstream.
type Relation struct {
	Head        string `json:"from"`
	Type        string `json:"type"`
	Tail        string `json:"to"`
	Explanation string `json:"explanation,omitempty"`
}

// RelationRecord is a relation as read back from the graph store, carrying the
// provenance of both endpoints.
type RelationRecord struct {
	Source      string `json:"source"`
	SourceDocID string `json:"source_doc_id"`
	Type        string `json:"relation_type"`
	Target      string `json:"target"`
	TargetDocID string `json:"target_doc_id"`
}
