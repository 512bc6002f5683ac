package config

import (
	_ "embed"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	Database DatabaseConfig
	Embedder EmbedderConfig
	Search   SearchConfig
}

type DatabaseConfig struct {
	URL          string // PostgreSQL connection URL
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

type EmbedderConfig struct {
	URL   string // embedding server base URL, defaults to http://localhost:8000
	Model string // model name for reference only
	Dim   int    // embedding dimension, defaults from defaults.yaml
}

// SearchConfig carries the tunable search defaults. Shipped values live
// in the embedded defaults.yaml; environment variables override them.
type SearchConfig struct {
	MatchThreshold   float64 // minimum similarity for an identity match
	UnknownThreshold float64 // max similarity to still count as unknown
	TopK             int     // default result count for ranked search
}

// searchDefaults mirrors the embedded defaults.yaml layout.
type searchDefaults struct {
	Search struct {
		MatchThreshold   float64 `yaml:"match_threshold"`
		UnknownThreshold float64 `yaml:"unknown_threshold"`
		TopK             int     `yaml:"top_k"`
	} `yaml:"search"`
	Embedding struct {
		Dim int `yaml:"dim"`
	} `yaml:"embedding"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a float in (0, 1].
// Returns the default value if the env var is unset, empty, or invalid.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 && f <= 1 {
		return f
	}
	return defaultVal
}

func Load() *Config {
	var defaults searchDefaults
	if err := yaml.Unmarshal(defaultsYAML, &defaults); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded defaults.yaml: " + err.Error())
	}

	return &Config{
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Embedder: EmbedderConfig{
			URL:   os.Getenv("EMBEDDER_URL"),
			Model: os.Getenv("EMBEDDER_MODEL"),
			Dim:   envInt("EMBEDDING_DIM", defaults.Embedding.Dim),
		},
		Search: SearchConfig{
			MatchThreshold:   envFloat("MATCH_THRESHOLD", defaults.Search.MatchThreshold),
			UnknownThreshold: envFloat("UNKNOWN_THRESHOLD", defaults.Search.UnknownThreshold),
			TopK:             envInt("SEARCH_TOP_K", defaults.Search.TopK),
		},
	}
}
