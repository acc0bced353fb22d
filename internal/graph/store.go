package graph

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/Irfan-KV/dev-twin/internal/core/model"
)

// Store persists entities and relation triples and answers the traversal
// queries the query pipeline needs.
type Store struct {
	driver Driver
	schema Schema
}

func NewStore(driver Driver, schema Schema) *Store {
	return &Store{driver: driver, schema: schema}
}

// EnsureIndexes creates the lookup indexes the store relies on. Failures are
// logged and skipped: the index may already exist or the backend may use a
// different index syntax, neither of which should block startup.
func (s *Store) EnsureIndexes(ctx context.Context) {
	queries := []string{
		"CREATE INDEX entity_name IF NOT EXISTS FOR (n:Entity) ON (n.name)",
		"CREATE INDEX entity_feature IF NOT EXISTS FOR (n:Entity) ON (n.feature_id)",
		"CREATE INDEX entity_document IF NOT EXISTS FOR (n:Entity) ON (n.document_id)",
	}
	for _, q := range queries {
		if _, err := s.driver.ExecuteQuery(ctx, q, nil); err != nil {
			log.Warn("failed to create graph index", "query", q, "err", err)
		}
	}
}

// UpsertKnowledge writes extracted entities and relations, tagging every node
// and edge with the ingestion's provenance. All writes are idempotent merges,
// so retrying after a partial failure is safe.
func (s *Store) UpsertKnowledge(ctx context.Context, entities []model.Entity, relations []model.Relation, documentID, featureID string) error {
	for _, e := range entities {
		params := map[string]any{
			"name":        e.Name,
			"label":       e.Label,
			"document_id": documentID,
			"feature_id":  featureID,
		}
		if _, err := s.driver.ExecuteQuery(ctx, MergeEntityQuery, params); err != nil {
			return fmt.Errorf("failed to upsert entity %q: %w", e.Name, err)
		}
	}

	for _, r := range relations {
		params := map[string]any{
			"head":        r.Head,
			"tail":        r.Tail,
			"type":        r.Type,
			"explanation": r.Explanation,
			"document_id": documentID,
			"feature_id":  featureID,
		}
		if _, err := s.driver.ExecuteQuery(ctx, s.relationQuery(r.Type), params); err != nil {
			return fmt.Errorf("failed to upsert relation %s-[%s]->%s: %w", r.Head, r.Type, r.Tail, err)
		}
	}

	return nil
}

func (s *Store) relationQuery(relType string) string {
	if s.schema == PerEntityLabelSchema && SafeIdentifier(relType) {
		return fmt.Sprintf(mergeDynamicRelationQuery, relType)
	}
	return MergeRelationQuery
}

// RelationsTouching returns every relation whose source or target name is in
// names, in store-native order.
func (s *Store) RelationsTouching(ctx context.Context, names []string) ([]model.RelationRecord, error) {
	if len(names) == 0 {
		return nil, nil
	}

	query := RelationsTouchingQuery
	if s.schema == PerEntityLabelSchema {
		query = RelationsTouchingDynamicQuery
	}

	result, err := s.driver.ExecuteQuery(ctx, query, map[string]any{"names": names})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch relations: %w", err)
	}

	records := make([]model.RelationRecord, 0, len(result.Records))
	for _, rec := range result.Records {
		records = append(records, model.RelationRecord{
			Source:      recordString(rec, "source"),
			SourceDocID: recordString(rec, "source_doc_id"),
			Type:        recordString(rec, "relation_type"),
			Target:      recordString(rec, "target"),
			TargetDocID: recordString(rec, "target_doc_id"),
		})
	}
	return records, nil
}

// KnownEntityLabels returns the distinct entity names in the graph, the
// vocabulary that grounds LLM entity resolution.
func (s *Store) KnownEntityLabels(ctx context.Context) ([]string, error) {
	result, err := s.driver.ExecuteQuery(ctx, KnownEntityNamesQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list entity names: %w", err)
	}

	names := make([]string, 0, len(result.Records))
	for _, rec := range result.Records {
		if name := recordString(rec, "name"); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

func recordString(rec *neo4j.Record, key string) string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
