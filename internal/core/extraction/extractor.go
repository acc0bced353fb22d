package extraction

import (
	"context"
	"fmt"
	"strings"

	"github.com/Irfan-KV/dev-twin/internal/core/common"
	"github.com/Irfan-KV/dev-twin/internal/core/model"
	"github.com/Irfan-KV/dev-twin/internal/llm"
)

// Error marks an extraction whose LLM reply could not be validated against
// the expected knowledge-graph shape. Callers decide whether to retry or
// abort the ingestion; the extractor never silently returns an empty result.
type Error struct {
	Reason string
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("knowledge extraction failed: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("knowledge extraction failed: %s", e.Reason)
}

func (e *Error) Unwrap() error { return e.Cause }

// Extractor turns raw text into entities and relation triples via the LLM.
type Extractor struct {
	LLM    llm.Client
	Prompt string
}

func NewExtractor(client llm.Client, prompt string) *Extractor {
	return &Extractor{LLM: client, Prompt: prompt}
}

// Extract asks the LLM for a structured knowledge graph and validates the
// reply. Relation types are normalized here, exactly once; downstream code
// must not re-normalize.
func (e *Extractor) Extract(ctx context.Context, text string) ([]model.Entity, []model.Relation, error) {
	prompt := fmt.Sprintf(e.Prompt, text)

	response, err := e.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate knowledge graph: %w", err)
	}

	kg, err := common.ParseJSON[model.KnowledgeGraph](response)
	if err != nil {
		return nil, nil, &Error{Reason: "unparseable structured output", Cause: err}
	}

	entities := make([]model.Entity, 0, len(kg.Entities))
	for _, ent := range kg.Entities {
		if strings.TrimSpace(ent.Name) == "" {
			return nil, nil, &Error{Reason: "entity with empty name"}
		}
		if ent.Label == "" {
			ent.Label = ent.Name
		}
		entities = append(entities, ent)
	}

	relations := make([]model.Relation, 0, len(kg.Relations))
	for _, rel := range kg.Relations {
		rel.Type = NormalizeRelationType(rel.Type)
		if rel.Head == "" || rel.Tail == "" || rel.Type == "" {
			return nil, nil, &Error{Reason: fmt.Sprintf("incomplete relation %+v", rel)}
		}
		relations = append(relations, rel)
	}

	return entities, relations, nil
}

// NormalizeRelationType collapses whitespace runs to single underscores and
// strips the characters that are never legal in an edge identifier. The graph
// store still allow-lists the result before any dynamic use.
func NormalizeRelationType(t string) string {
	t = strings.Join(strings.Fields(t), "_")
	replacer := strings.NewReplacer("`", "", "-", "_", "/", "_")
	return replacer.Replace(t)
}
