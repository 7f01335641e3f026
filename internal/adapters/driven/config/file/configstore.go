// Package file provides a TOML-backed configuration store.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all user-tunable settings. Zero values are replaced by
// defaults when loading.
type Config struct {
	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
	Chunker   ChunkerConfig   `toml:"chunker"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Storage   StorageConfig   `toml:"storage"`
	Chat      ChatConfig      `toml:"chat"`
}

// EmbeddingConfig selects and tunes the embedding provider.
type EmbeddingConfig struct {
	Provider  string `toml:"provider"`
	Model     string `toml:"model"`
	BaseURL   string `toml:"base_url"`
	APIKeyEnv string `toml:"api_key_env"`
}

// LLMConfig selects and tunes the chat model provider.
type LLMConfig struct {
	Provider  string `toml:"provider"`
	Model     string `toml:"model"`
	BaseURL   string `toml:"base_url"`
	APIKeyEnv string `toml:"api_key_env"`
}

// ChunkerConfig tunes document splitting.
type ChunkerConfig struct {
	Size    int `toml:"size"`
	Overlap int `toml:"overlap"`
}

// RetrievalConfig tunes search behaviour.
type RetrievalConfig struct {
	TopK int `toml:"top_k"`
}

// StorageConfig points at on-disk locations.
type StorageConfig struct {
	VectorDir string `toml:"vector_dir"`
	DataDir   string `toml:"data_dir"`
}

// ChatConfig tunes conversational behaviour. HistoryLimit of zero means
// the full transcript is sent with every question.
type ChatConfig struct {
	HistoryLimit int `toml:"history_limit"`
}

// DefaultConfig returns a config populated with defaults.
func DefaultConfig() Config {
	return Config{
		Embedding: EmbeddingConfig{
			Provider:  "ollama",
			Model:     "all-minilm",
			APIKeyEnv: "OPENAI_API_KEY",
		},
		LLM: LLMConfig{
			Provider:  "groq",
			Model:     "llama3-8b-8192",
			APIKeyEnv: "GROQ_API_KEY",
		},
		Chunker: ChunkerConfig{
			Size:    500,
			Overlap: 50,
		},
		Retrieval: RetrievalConfig{
			TopK: 3,
		},
		Chat: ChatConfig{},
	}
}

// ConfigStore loads and persists the TOML config file.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	config   Config
}

// NewConfigStore creates a config store backed by configDir/config.toml.
// If configDir is empty, defaults to ~/.docchat/config.toml. A missing
// file yields the defaults.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".docchat")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		config:   DefaultConfig(),
	}

	if err := s.Load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Config returns a copy of the current configuration.
func (s *ConfigStore) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Update applies fn to the configuration and persists the result.
func (s *ConfigStore) Update(fn func(*Config)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.config)
	return s.save()
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.config)
	if err != nil {
		return err
	}

	// Restricted permissions, the file may name API key variables
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads configuration from the TOML file, layering it over defaults.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file yet, start from defaults
			s.config = DefaultConfig()
			return nil
		}
		return err
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parsing %s: %w", s.filePath, err)
	}

	s.config = applyDefaults(config)
	return nil
}

// applyDefaults backfills zero values that make no sense at zero.
func applyDefaults(c Config) Config {
	defaults := DefaultConfig()

	if c.Embedding.Provider == "" {
		c.Embedding = defaults.Embedding
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = defaults.LLM.Provider
	}
	if c.LLM.Model == "" {
		c.LLM.Model = defaults.LLM.Model
	}
	if c.LLM.APIKeyEnv == "" {
		c.LLM.APIKeyEnv = defaults.LLM.APIKeyEnv
	}
	if c.Chunker.Size <= 0 {
		c.Chunker.Size = defaults.Chunker.Size
	}
	if c.Chunker.Overlap < 0 {
		c.Chunker.Overlap = defaults.Chunker.Overlap
	}
	if c.Retrieval.TopK <= 0 {
		c.Retrieval.TopK = defaults.Retrieval.TopK
	}
	if c.Chat.HistoryLimit < 0 {
		c.Chat.HistoryLimit = 0
	}
	return c
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
