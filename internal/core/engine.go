package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Irfan-KV/dev-twin/internal/chunk"
	"github.com/Irfan-KV/dev-twin/internal/config"
	"github.com/Irfan-KV/dev-twin/internal/core/common"
	"github.com/Irfan-KV/dev-twin/internal/core/extraction"
	"github.com/Irfan-KV/dev-twin/internal/core/model"
	"github.com/Irfan-KV/dev-twin/internal/llm"
)

// VectorIndex is the slice of the vector store the engine consumes.
type VectorIndex interface {
	UpsertChunks(ctx context.Context, chunks []model.EmbeddedChunk) error
	Search(ctx context.Context, vec []float32, topK int, featureID string) ([]model.ChunkHit, error)
	Collection() string
}

// GraphStore is the slice of the graph store the engine consumes.
type GraphStore interface {
	UpsertKnowledge(ctx context.Context, entities []model.Entity, relations []model.Relation, documentID, featureID string) error
	RelationsTouching(ctx context.Context, names []string) ([]model.RelationRecord, error)
	KnownEntityLabels(ctx context.Context) ([]string, error)
}

// Engine orchestrates the two pipelines: ingestion (chunk, embed, upsert
// vectors, extract knowledge, upsert graph) and query (vector search fused
// with graph traversal, then synthesis).
type Engine struct {
	Vector    VectorIndex
	Graph     GraphStore
	LLM       llm.Client
	Embedder  llm.Embedder
	Extractor *extraction.Extractor

	Prompts      config.Prompts
	ChunkSize    int
	ChunkOverlap int
	DefaultTopK  int
	Timeout      time.Duration

	// UUIDGenerator mints vector point ids; replaceable in tests.
	UUIDGenerator func() string
}

func NewEngine(vec VectorIndex, graph GraphStore, client llm.Client, embedder llm.Embedder, cfg *config.Config) *Engine {
	return &Engine{
		Vector:        vec,
		Graph:         graph,
		LLM:           client,
		Embedder:      embedder,
		Extractor:     extraction.NewExtractor(client, cfg.Prompts.Extraction),
		Prompts:       cfg.Prompts,
		ChunkSize:     cfg.Chunking.Size,
		ChunkOverlap:  cfg.Chunking.Overlap,
		DefaultTopK:   cfg.Pipeline.DefaultTopK,
		Timeout:       time.Duration(cfg.Pipeline.TimeoutSeconds) * time.Second,
		UUIDGenerator: func() string { return uuid.New().String() },
	}
}

// Ingest chunks and embeds the document into the vector index and extracts
// its knowledge graph, tagging every artifact with the document and feature
// ids. The two stores are independent: a graph failure after the vector
// commit is reported as a partial ingestion, not rolled back.
func (e *Engine) Ingest(ctx context.Context, featureID, documentID, text string) (*model.IngestSummary, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: document text is empty", ErrValidation)
	}

	chunks, err := chunk.Split(text, e.ChunkSize, e.ChunkOverlap)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	// Embedding and knowledge extraction both depend only on the raw text,
	// so they run concurrently.
	var (
		entities     []model.Entity
		relations    []model.Relation
		vectorsSaved bool
	)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := e.embedAndUpsert(gctx, chunks, documentID, featureID); err != nil {
			return err
		}
		vectorsSaved = true
		return nil
	})

	g.Go(func() error {
		callCtx, cancel := e.callCtx(gctx)
		defer cancel()
		ents, rels, err := e.Extractor.Extract(callCtx, text)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrProvider, err)
		}
		entities, relations = ents, rels
		return nil
	})

	if err := g.Wait(); err != nil {
		if vectorsSaved {
			return nil, fmt.Errorf("%w: vector data committed but knowledge extraction failed: %w", ErrPartialIngest, err)
		}
		return nil, err
	}

	callCtx, cancel := e.callCtx(ctx)
	defer cancel()
	if err := e.Graph.UpsertKnowledge(callCtx, entities, relations, documentID, featureID); err != nil {
		return nil, fmt.Errorf("%w: vector data committed but graph write failed: %w",
			ErrPartialIngest, fmt.Errorf("%w: %v", ErrStore, err))
	}

	return &model.IngestSummary{
		Status:     "ingested",
		FeatureID:  featureID,
		DocumentID: documentID,
		Chunks:     len(chunks),
		Collection: e.Vector.Collection(),
	}, nil
}

func (e *Engine) embedAndUpsert(ctx context.Context, chunks []string, documentID, featureID string) error {
	embedCtx, cancel := e.callCtx(ctx)
	defer cancel()
	vectors, err := e.Embedder.EmbedBatch(embedCtx, chunks)
	if err != nil {
		return fmt.Errorf("%w: embedding failed: %v", ErrProvider, err)
	}

	embedded := make([]model.EmbeddedChunk, len(chunks))
	for i, c := range chunks {
		embedded[i] = model.EmbeddedChunk{
			ID:         e.UUIDGenerator(),
			Text:       c,
			Vector:     vectors[i],
			DocumentID: documentID,
			FeatureID:  featureID,
		}
	}

	upsertCtx, cancel := e.callCtx(ctx)
	defer cancel()
	if err := e.Vector.UpsertChunks(upsertCtx, embedded); err != nil {
		return fmt.Errorf("%w: vector upsert failed: %v", ErrStore, err)
	}
	return nil
}

// Retrieve is the document-id variant of the query pipeline: it runs every
// retrieval stage but skips answer synthesis.
func (e *Engine) Retrieve(ctx context.Context, question string, topK int, featureID string) (*model.RetrievalResult, error) {
	r, err := e.retrieve(ctx, question, topK, featureID)
	if err != nil {
		return nil, err
	}
	return &model.RetrievalResult{DocumentIDs: r.docIDs, Context: r.context}, nil
}

// Answer runs the full pipeline and synthesizes a grounded answer.
func (e *Engine) Answer(ctx context.Context, question string, topK int, featureID string) (*model.QueryResult, error) {
	r, err := e.retrieve(ctx, question, topK, featureID)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(e.Prompts.Synthesis, question, r.context, renderRelations(r.relations))
	callCtx, cancel := e.callCtx(ctx)
	defer cancel()
	answer, err := e.LLM.Generate(callCtx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: answer synthesis failed: %v", ErrProvider, err)
	}

	return &model.QueryResult{
		Answer:      answer,
		Entities:    r.entities,
		Relations:   r.relations,
		DocumentIDs: r.docIDs,
		Context:     r.context,
	}, nil
}

type retrieval struct {
	context   string
	entities  []string
	relations []model.RelationRecord
	docIDs    []string
}

func (e *Engine) retrieve(ctx context.Context, question string, topK int, featureID string) (*retrieval, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: question is empty", ErrValidation)
	}
	if topK <= 0 {
		topK = e.DefaultTopK
	}

	embedCtx, cancel := e.callCtx(ctx)
	defer cancel()
	queryVec, err := e.Embedder.Embed(embedCtx, question)
	if err != nil {
		return nil, fmt.Errorf("%w: query embedding failed: %v", ErrProvider, err)
	}

	// Vector search and the label vocabulary fetch have no data dependency.
	var (
		hits   []model.ChunkHit
		labels []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		callCtx, cancel := e.callCtx(gctx)
		defer cancel()
		h, err := e.Vector.Search(callCtx, queryVec, topK, featureID)
		if err != nil {
			return fmt.Errorf("%w: vector search failed: %v", ErrStore, err)
		}
		hits = h
		return nil
	})
	g.Go(func() error {
		callCtx, cancel := e.callCtx(gctx)
		defer cancel()
		l, err := e.Graph.KnownEntityLabels(callCtx)
		if err != nil {
			return fmt.Errorf("%w: listing entity names failed: %v", ErrStore, err)
		}
		labels = l
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	texts := make([]string, len(hits))
	docIDs := make(map[string]struct{})
	for i, h := range hits {
		texts[i] = h.Text
		if h.DocumentID != "" {
			docIDs[h.DocumentID] = struct{}{}
		}
	}
	textContext := strings.Join(texts, "\n")

	entities := e.resolveEntities(ctx, question, labels)

	var relations []model.RelationRecord
	if len(entities) > 0 {
		callCtx, cancel := e.callCtx(ctx)
		defer cancel()
		relations, err = e.Graph.RelationsTouching(callCtx, entities)
		if err != nil {
			return nil, fmt.Errorf("%w: graph traversal failed: %v", ErrStore, err)
		}
		relations = e.filterRelations(ctx, question, relations)
	}

	for _, r := range relations {
		if r.SourceDocID != "" {
			docIDs[r.SourceDocID] = struct{}{}
		}
		if r.TargetDocID != "" {
			docIDs[r.TargetDocID] = struct{}{}
		}
	}

	ids := make([]string, 0, len(docIDs))
	for id := range docIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return &retrieval{
		context:   textContext,
		entities:  entities,
		relations: relations,
		docIDs:    ids,
	}, nil
}

// resolveEntities grounds the question in the graph's entity vocabulary. A
// best-effort stage: any provider failure degrades to zero entities, which
// downstream means an empty relation set, never a failed request.
func (e *Engine) resolveEntities(ctx context.Context, question string, labels []string) []string {
	if len(labels) == 0 {
		return nil
	}

	prompt := fmt.Sprintf(e.Prompts.EntityResolution, strings.Join(labels, ", "), question)
	callCtx, cancel := e.callCtx(ctx)
	defer cancel()
	response, err := e.LLM.Generate(callCtx, prompt)
	if err != nil {
		log.Warn("entity resolution failed, continuing without graph context", "err", err)
		return nil
	}

	return common.SplitCommaList(response)
}

// filterRelations asks the LLM which traversal results actually bear on the
// question. A best-effort stage: anything short of a well-formed, in-range
// selection keeps the full unfiltered set.
func (e *Engine) filterRelations(ctx context.Context, question string, relations []model.RelationRecord) []model.RelationRecord {
	if len(relations) == 0 {
		return relations
	}

	var sb strings.Builder
	for i, r := range relations {
		fmt.Fprintf(&sb, "[%d] %s -[%s]-> %s\n", i, r.Source, r.Type, r.Target)
	}

	prompt := fmt.Sprintf(e.Prompts.RelevanceFilter, question, sb.String())
	callCtx, cancel := e.callCtx(ctx)
	defer cancel()
	response, err := e.LLM.Generate(callCtx, prompt)
	if err != nil {
		log.Warn("relevance filtering failed, using unfiltered relations", "err", err)
		return relations
	}

	selection, err := common.ParseJSON[model.RelevanceSelection](response)
	if err != nil {
		log.Warn("unparseable relevance selection, using unfiltered relations", "err", err)
		return relations
	}
	if selection.Relevant == nil {
		// Valid JSON without the expected key is not a selection at all; only
		// an explicit empty list means "nothing relevant".
		log.Warn("relevance selection missing \"relevant\" key, using unfiltered relations")
		return relations
	}

	filtered := make([]model.RelationRecord, 0, len(*selection.Relevant))
	for _, idx := range *selection.Relevant {
		if idx < 0 || idx >= len(relations) {
			log.Warn("relevance selection index out of range, using unfiltered relations", "index", idx)
			return relations
		}
		filtered = append(filtered, relations[idx])
	}
	return filtered
}

func renderRelations(relations []model.RelationRecord) string {
	if len(relations) == 0 {
		return "(none)"
	}
	var sb strings.Builder
	for _, r := range relations {
		fmt.Fprintf(&sb, "%s -[%s]-> %s\n", r.Source, r.Type, r.Target)
	}
	return sb.String()
}

func (e *Engine) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, e.Timeout)
}
