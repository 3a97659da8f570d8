package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultCollection = "documents"
	DefaultWorkers    = 4
)

// Config is the application configuration.
type Config struct {
	Indexer   IndexerConfig   `toml:"indexer"`
	Drive     DriveConfig     `toml:"drive"`
	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
	Qdrant    QdrantConfig    `toml:"qdrant"`
	Storage   StorageConfig   `toml:"storage"`
}

// IndexerConfig configures the indexing pipeline.
type IndexerConfig struct {
	// Collection is the vector store collection name.
	Collection string `toml:"collection"`

	// Workers bounds concurrent document pipelines.
	Workers int `toml:"workers"`

	// ChunkSize is the chunking window in characters (0 = default).
	ChunkSize int `toml:"chunk_size"`

	// ChunkOverlap is the window overlap in characters (0 = default).
	ChunkOverlap int `toml:"chunk_overlap"`
}

// DriveConfig configures the Google Drive source.
type DriveConfig struct {
	// CredentialsFile is the service account key file path.
	CredentialsFile string `toml:"credentials_file"`

	// FolderID is the default folder to index.
	FolderID string `toml:"folder_id"`

	// Recursive walks sub-folders when true.
	Recursive bool `toml:"recursive"`
}

// EmbeddingConfig configures the embedding service.
type EmbeddingConfig struct {
	// Provider selects the embedding backend: "ollama" or "openai".
	Provider string `toml:"provider"`

	// BaseURL overrides the provider's endpoint.
	BaseURL string `toml:"base_url"`

	// Model is the embedding model name.
	Model string `toml:"model"`

	// APIKey authenticates hosted providers.
	APIKey string `toml:"api_key"`

	// Dimensions overrides the model's vector size.
	Dimensions int `toml:"dimensions"`
}

// LLMConfig configures the optional summarisation service.
type LLMConfig struct {
	// Provider selects the LLM backend: "ollama", "openai",
	// "anthropic", or "" to index without summaries.
	Provider string `toml:"provider"`

	// BaseURL overrides the provider's endpoint.
	BaseURL string `toml:"base_url"`

	// Model is the LLM model name.
	Model string `toml:"model"`

	// APIKey authenticates hosted providers.
	APIKey string `toml:"api_key"`
}

// QdrantConfig configures the vector store connection.
type QdrantConfig struct {
	Host   string `toml:"host"`
	Port   int    `toml:"port"`
	APIKey string `toml:"api_key"`
	UseTLS bool   `toml:"use_tls"`
}

// StorageConfig configures local persistence.
type StorageConfig struct {
	// DataDir is where the run ledger lives.
	// Empty defaults to ~/.docindexer/data.
	DataDir string `toml:"data_dir"`
}

// DefaultConfig returns a configuration targeting a local stack.
func DefaultConfig() Config {
	return Config{
		Indexer: IndexerConfig{
			Collection: DefaultCollection,
			Workers:    DefaultWorkers,
		},
		Drive: DriveConfig{
			Recursive: true,
		},
		Embedding: EmbeddingConfig{
			Provider: "ollama",
		},
		LLM: LLMConfig{
			Provider: "ollama",
		},
		Qdrant: QdrantConfig{
			Host: "localhost",
			Port: 6334,
		},
	}
}

// DefaultPath returns the default config file location,
// ~/.docindexer/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".docindexer", "config.toml"), nil
}

// Load reads configuration from the given path, applying defaults for
// absent fields. A missing file is not an error; the defaults are
// returned as-is.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes configuration to the given path, creating parent
// directories as needed.
func Save(path string, cfg Config) error {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// applyDefaults backfills zero values left by a sparse config file.
func (c *Config) applyDefaults() {
	if c.Indexer.Collection == "" {
		c.Indexer.Collection = DefaultCollection
	}
	if c.Indexer.Workers <= 0 {
		c.Indexer.Workers = DefaultWorkers
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "ollama"
	}
	if c.Qdrant.Host == "" {
		c.Qdrant.Host = "localhost"
	}
	if c.Qdrant.Port == 0 {
		c.Qdrant.Port = 6334
	}
}

// applyEnvOverrides lets secrets come from the environment instead of
// the config file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		c.Drive.CredentialsFile = v
	}
	if v := os.Getenv("DOCINDEXER_EMBEDDING_API_KEY"); v != "" {
		c.Embedding.APIKey = v
	}
	if v := os.Getenv("DOCINDEXER_LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("QDRANT_API_KEY"); v != "" {
		c.Qdrant.APIKey = v
	}
}
