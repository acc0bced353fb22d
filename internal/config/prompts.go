package config

// DefaultPrompts returns the built-in prompt templates. Each template is a
// fmt.Sprintf format string; the placeholders are documented per field so
// overriding prompts in the config file keeps the same argument order.
func DefaultPrompts() Prompts {
	return Prompts{
		// %s = document text
		Extraction: `You are an expert knowledge graph builder.
Read the raw text below and extract entities and relationships for a graph database.

Instructions:
1. Identify all entities mentioned in the text. For each entity return:
   - "name": human-readable identifier
   - "label": a short display/grouping tag for the entity
2. Identify all relationships between entities. For each return:
   - "from": entity name
   - "to": entity name
   - "type": relationship type (WORKED_ON, CONTRIBUTED_TO, MODIFIED_BY, IMPACTS, BASED_ON, ASSIGNED, AUTHORED, DESCRIBES, etc.)
   - "explanation": brief reasoning or context
3. Use only facts explicitly stated or strongly implied.

Return ONLY a JSON object of the shape:
{"entities": [{"name": "...", "label": "..."}], "relations": [{"from": "...", "type": "...", "to": "...", "explanation": "..."}]}

Text:
"""%s"""`,

		// %s = known entity vocabulary, %s = question
		EntityResolution: `The knowledge graph contains exactly these entities:
%s

Name the entities from that list that are relevant to the question below.
Use ONLY names from the list; do not invent entities that are not in it.
Return a comma-separated list of entity names and nothing else.

Question: %s`,

		// %s = question, %s = numbered relation list
		RelevanceFilter: `Question: %s

Candidate graph relations:
%s

Select only the relations directly relevant to answering the question.
Return ONLY a JSON object of the shape {"relevant": [indices]} where indices
refer to the numbered list above. Example: {"relevant": [0, 2]}`,

		// %s = question, %s = text context, %s = graph relations
		Synthesis: `Answer the question using the text context and the knowledge graph.

Question: %s

Text context:
%s

Graph relations:
%s`,
	}
}
