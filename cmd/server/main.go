package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/Irfan-KV/dev-twin/internal/config"
	"github.com/Irfan-KV/dev-twin/internal/core"
	"github.com/Irfan-KV/dev-twin/internal/graph"
	"github.com/Irfan-KV/dev-twin/internal/llm"
	"github.com/Irfan-KV/dev-twin/internal/server"
	"github.com/Irfan-KV/dev-twin/internal/vector"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment as-is")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Warn("config file not loaded, falling back to defaults", "path", cfgPath, "err", err)
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	if missing := cfg.Validate(); len(missing) > 0 {
		log.Fatal("missing required configuration", "settings", strings.Join(missing, ", "))
	}

	ctx := context.Background()

	schema, err := graph.ParseSchema(cfg.Graph.Schema)
	if err != nil {
		log.Fatal("invalid graph schema setting", "err", err)
	}

	driver, err := graph.NewBoltDriver(ctx, cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password)
	if err != nil {
		log.Fatal("failed to connect to graph store", "err", err)
	}
	defer driver.Close(ctx)

	graphStore := graph.NewStore(driver, schema)
	graphStore.EnsureIndexes(ctx)

	vectorStore, err := vector.NewStore(vector.Options{
		Host:       cfg.Qdrant.Host,
		Port:       cfg.Qdrant.Port,
		APIKey:     cfg.Qdrant.APIKey,
		UseTLS:     cfg.Qdrant.UseTLS,
		Collection: cfg.Qdrant.Collection,
		Dimension:  cfg.LLM.EmbeddingDimension,
	})
	if err != nil {
		log.Fatal("failed to connect to vector index", "err", err)
	}
	defer vectorStore.Close()

	if err := vectorStore.EnsureCollection(ctx); err != nil {
		log.Fatal("failed to ensure vector collection", "err", err)
	}

	llmClient, embedder, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		log.Fatal("failed to initialize llm client", "err", err)
	}
	if embedder == nil {
		log.Fatal("configured llm provider has no embedding endpoint", "provider", cfg.LLM.Provider)
	}

	engine := core.NewEngine(vectorStore, graphStore, llmClient, embedder, cfg)
	srv := server.New(engine)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info("starting server", "port", port, "collection", cfg.Qdrant.Collection, "schema", cfg.Graph.Schema)
	if err := srv.Router().Run(fmt.Sprintf(":%s", port)); err != nil {
		log.Fatal("server exited", "err", err)
	}
}
