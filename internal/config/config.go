package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	EmbeddingModel string `toml:"embedding_model"`
	// EmbeddingDimension must match the vector collection's declared size.
	EmbeddingDimension int    `toml:"embedding_dimension"`
	APIKey             string `toml:"api_key"`
	BaseURL            string `toml:"base_url"`
}

type QdrantConfig struct {
	Host       string `toml:"host"`
	Port       int    `toml:"port"`
	APIKey     string `toml:"api_key"`
	UseTLS     bool   `toml:"use_tls"`
	Collection string `toml:"collection"`
}

type Neo4jConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type ChunkingConfig struct {
	Size    int `toml:"size"`
	Overlap int `toml:"overlap"`
}

type GraphConfig struct {
	// Schema selects how extracted knowledge maps onto the graph:
	// "fixed" uses a single Entity label and a RELATION edge type carrying the
	// relation type as a property; "per_entity" uses dynamic edge types built
	// from the sanitized relation type.
	Schema string `toml:"schema"`
}

type PipelineConfig struct {
	DefaultTopK    int `toml:"default_top_k"`
	TimeoutSeconds int `toml:"timeout_seconds"`
}

type Prompts struct {
	Extraction       string `toml:"extraction"`
	EntityResolution string `toml:"entity_resolution"`
	RelevanceFilter  string `toml:"relevance_filter"`
	Synthesis        string `toml:"synthesis"`
}

type Config struct {
	LLM      LLMConfig      `toml:"llm"`
	Qdrant   QdrantConfig   `toml:"qdrant"`
	Neo4j    Neo4jConfig    `toml:"neo4j"`
	Chunking ChunkingConfig `toml:"chunking"`
	Graph    GraphConfig    `toml:"graph"`
	Pipeline PipelineConfig `toml:"pipeline"`
	Prompts  Prompts        `toml:"prompts"`
}

// Default returns a config with every optional setting filled in. Required
// settings (credentials, endpoints) stay empty and are caught by Validate.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:           "openai",
			Model:              "gpt-4o-mini",
			EmbeddingModel:     "text-embedding-3-small",
			EmbeddingDimension: 1536,
		},
		Qdrant: QdrantConfig{
			Port:       6334,
			Collection: "graph_rag_demo",
		},
		Chunking: ChunkingConfig{Size: 500, Overlap: 100},
		Graph:    GraphConfig{Schema: "fixed"},
		Pipeline: PipelineConfig{DefaultTopK: 3, TimeoutSeconds: 60},
		Prompts:  DefaultPrompts(),
	}
}

// Load reads a TOML config file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides file settings with environment variables where present.
func (c *Config) ApplyEnv() {
	setString(&c.LLM.Provider, "LLM_PROVIDER")
	setString(&c.LLM.Model, "LLM_MODEL")
	setString(&c.LLM.EmbeddingModel, "EMBEDDING_MODEL")
	setInt(&c.LLM.EmbeddingDimension, "EMBEDDING_DIMENSION")
	setString(&c.LLM.APIKey, "OPENAI_API_KEY")
	setString(&c.LLM.APIKey, "LLM_API_KEY")
	setString(&c.LLM.BaseURL, "LLM_BASE_URL")

	setString(&c.Qdrant.Host, "QDRANT_HOST")
	setInt(&c.Qdrant.Port, "QDRANT_PORT")
	setString(&c.Qdrant.APIKey, "QDRANT_API_KEY")
	setString(&c.Qdrant.Collection, "QDRANT_COLLECTION")

	setString(&c.Neo4j.URI, "NEO4J_URI")
	setString(&c.Neo4j.User, "NEO4J_USER")
	setString(&c.Neo4j.Password, "NEO4J_PASS")
}

// Validate enumerates every required setting that is missing. An empty slice
// means the config is usable.
func (c *Config) Validate() []string {
	var missing []string

	if c.LLM.Provider == "" {
		missing = append(missing, "llm.provider")
	}
	// Ollama accepts any key; every other provider needs a real one.
	if c.LLM.APIKey == "" && c.LLM.Provider != "ollama" {
		missing = append(missing, "llm.api_key")
	}
	if c.Qdrant.Host == "" {
		missing = append(missing, "qdrant.host")
	}
	if c.Neo4j.URI == "" {
		missing = append(missing, "neo4j.uri")
	}
	if c.Neo4j.User == "" {
		missing = append(missing, "neo4j.user")
	}
	if c.Neo4j.Password == "" {
		missing = append(missing, "neo4j.password")
	}

	return missing
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
