package model

// KnowledgeGraph is the structured shape the extraction LLM is asked to emit.
type KnowledgeGraph struct {
	Entities  []Entity   `json:"entities"`
	Relations []Relation `json:"relations"`
}

// RelevanceSelection is the structured shape the relevance-filter LLM is asked
// to emit: indices into the candidate relation list. Relevant is a pointer so
// a reply missing the key entirely is distinguishable from a well-formed
// empty selection.
type RelevanceSelection struct {
	Relevant *[]int `json:"relevant"`
}
