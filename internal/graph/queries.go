package graph

const (
	// Idempotent merge by entity name. Provenance is last-write-wins: the most
	// recent ingestion owns document_id/feature_id on a shared node.
	MergeEntityQuery = `
		MERGE (n:Entity {name: $name})
		SET n.label = $label,
			n.document_id = $document_id,
			n.feature_id = $feature_id
		RETURN n.name AS name
	`

	// Idempotent merge by (head, type, tail). Endpoints are merged too so a
	// relation never dangles, but their provenance is only set on create to
	// avoid clobbering a richer entity write.
	MergeRelationQuery = `
		MERGE (h:Entity {name: $head})
		ON CREATE SET h.document_id = $document_id, h.feature_id = $feature_id
		MERGE (t:Entity {name: $tail})
		ON CREATE SET t.document_id = $document_id, t.feature_id = $feature_id
		MERGE (h)-[r:RELATION {type: $type}]->(t)
		SET r.explanation = $explanation,
			r.document_id = $document_id,
			r.feature_id = $feature_id
		RETURN h.name AS head
	`

	// %s is the relation type; only identifiers passing SafeIdentifier are
	// ever substituted here.
	mergeDynamicRelationQuery = `
		MERGE (h:Entity {name: $head})
		ON CREATE SET h.document_id = $document_id, h.feature_id = $feature_id
		MERGE (t:Entity {name: $tail})
		ON CREATE SET t.document_id = $document_id, t.feature_id = $feature_id
		MERGE (h)-[r:%s]->(t)
		SET r.type = $type,
			r.explanation = $explanation,
			r.document_id = $document_id,
			r.feature_id = $feature_id
		RETURN h.name AS head
	`

	RelationsTouchingQuery = `
		MATCH (a:Entity)-[r:RELATION]->(b:Entity)
		WHERE a.name IN $names OR b.name IN $names
		RETURN a.name AS source,
			a.document_id AS source_doc_id,
			r.type AS relation_type,
			b.name AS target,
			b.document_id AS target_doc_id
	`

	// r.type is authoritative: unsafe relation types fall back to the fixed
	// RELATION edge, where type(r) would read back as the literal "RELATION".
	RelationsTouchingDynamicQuery = `
		MATCH (a:Entity)-[r]->(b:Entity)
		WHERE a.name IN $names OR b.name IN $names
		RETURN a.name AS source,
			a.document_id AS source_doc_id,
			coalesce(r.type, type(r)) AS relation_type,
			b.name AS target,
			b.document_id AS target_doc_id
	`

	KnownEntityNamesQuery = `
		MATCH (n:Entity)
		RETURN DISTINCT n.name AS name
	`
)
