package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"esgrag/internal/domain"
)

// ProviderConfig holds connection details for a remote embedding or
// generation provider. The key itself is read from the environment.
type ProviderConfig struct {
	BaseURL     string `yaml:"base_url,omitempty"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// APIKey returns the value of the configured environment variable.
func (p *ProviderConfig) APIKey() string {
	if p == nil || p.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(p.APIKeyEnv)
}

// CorpusConfig points at the directory of .txt documents.
type CorpusConfig struct {
	Path string `yaml:"path"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type   string          `yaml:"type"`
	Gemini *ProviderConfig `yaml:"gemini,omitempty"`
	OpenAI *ProviderConfig `yaml:"openai,omitempty"`
}

// GeneratorConfig selects and configures the answer generator.
type GeneratorConfig struct {
	Type   string          `yaml:"type"`
	Gemini *ProviderConfig `yaml:"gemini,omitempty"`
	OpenAI *ProviderConfig `yaml:"openai,omitempty"`
}

// ChunkerConfig configures how documents are split into chunks.
type ChunkerConfig struct {
	Type              string `yaml:"type"`
	Size              int    `yaml:"size"`
	Overlap           *int   `yaml:"overlap"`
	MinLength         *int   `yaml:"min_length"`
	SentencesPerChunk int    `yaml:"sentences_per_chunk"`
	OverlapSentences  int    `yaml:"overlap_sentences"`
}

// RetrievalConfig controls how many passages become context. A top_k of 0
// means no context is ever retrieved.
type RetrievalConfig struct {
	TopK      *int   `yaml:"top_k"`
	Separator string `yaml:"separator"`
}

// SummarizerConfig selects and configures the corpus summarizer.
type SummarizerConfig struct {
	Type         string `yaml:"type"`
	MaxSentences int    `yaml:"max_sentences"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Corpus     CorpusConfig     `yaml:"corpus"`
	Chunker    ChunkerConfig    `yaml:"chunker"`
	Embedder   EmbedderConfig   `yaml:"embedder"`
	Generator  GeneratorConfig  `yaml:"generator"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Log        LogConfig        `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML, fills unset fields with defaults and validates the result.
func Parse(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/esgrag/config.yaml.
// If neither exists, it writes defaults to ~/.config/esgrag/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "esgrag", "config.yaml"), nil
}

// Default returns the built-in configuration: Gemini for both embedding and
// generation, 1000/200 character windows and three passages of context.
func Default() *AppConfig {
	cfg := &AppConfig{
		Corpus:     CorpusConfig{Path: "esg_docs"},
		Chunker:    ChunkerConfig{Type: "window"},
		Embedder:   EmbedderConfig{Type: "gemini"},
		Generator:  GeneratorConfig{Type: "gemini"},
		Summarizer: SummarizerConfig{Type: "frequency"},
	}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Corpus.Path == "" {
		cfg.Corpus.Path = "esg_docs"
	}
	if cfg.Chunker.Type == "" {
		cfg.Chunker.Type = "window"
	}
	if cfg.Chunker.Size == 0 {
		cfg.Chunker.Size = 1000
	}
	if cfg.Chunker.Overlap == nil {
		// the default overlap only applies to windows wider than it
		overlap := 200
		if cfg.Chunker.Size <= overlap {
			overlap = 0
		}
		cfg.Chunker.Overlap = Int(overlap)
	}
	if cfg.Chunker.MinLength == nil {
		cfg.Chunker.MinLength = Int(20)
	}
	if cfg.Chunker.SentencesPerChunk == 0 {
		cfg.Chunker.SentencesPerChunk = 5
	}
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "gemini"
	}
	if cfg.Generator.Type == "" {
		cfg.Generator.Type = "gemini"
	}
	if cfg.Embedder.Type == "gemini" {
		cfg.Embedder.Gemini = providerDefaults(cfg.Embedder.Gemini, "GEMINI_API_KEY", "gemini-embedding-001", 30)
	}
	if cfg.Embedder.Type == "openai" {
		cfg.Embedder.OpenAI = providerDefaults(cfg.Embedder.OpenAI, "OPENAI_API_KEY", "text-embedding-3-small", 30)
	}
	if cfg.Generator.Type == "gemini" {
		cfg.Generator.Gemini = providerDefaults(cfg.Generator.Gemini, "GEMINI_API_KEY", "gemini-2.5-flash", 60)
	}
	if cfg.Generator.Type == "openai" {
		cfg.Generator.OpenAI = providerDefaults(cfg.Generator.OpenAI, "OPENAI_API_KEY", "gpt-4o-mini", 60)
	}
	if cfg.Retrieval.TopK == nil {
		cfg.Retrieval.TopK = Int(3)
	}
	if cfg.Retrieval.Separator == "" {
		cfg.Retrieval.Separator = "\n---\n"
	}
	if cfg.Summarizer.Type == "" {
		cfg.Summarizer.Type = "frequency"
	}
	if cfg.Summarizer.MaxSentences == 0 {
		cfg.Summarizer.MaxSentences = 3
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

func providerDefaults(p *ProviderConfig, keyEnv, model string, timeoutSecs int) *ProviderConfig {
	if p == nil {
		p = &ProviderConfig{}
	}
	if p.APIKeyEnv == "" {
		p.APIKeyEnv = keyEnv
	}
	if p.Model == "" {
		p.Model = model
	}
	if p.TimeoutSecs == 0 {
		p.TimeoutSecs = timeoutSecs
	}
	return p
}

// Validate rejects configurations that cannot run. It does not check API keys;
// those are resolved when providers are constructed.
func (c *AppConfig) Validate() error {
	switch c.Chunker.Type {
	case "window":
		if c.Chunker.Size <= 0 {
			return fmt.Errorf("%w: chunker.size must be positive", domain.ErrInvalidChunkConfig)
		}
		if overlap := deref(c.Chunker.Overlap); overlap < 0 || overlap >= c.Chunker.Size {
			return fmt.Errorf("%w: chunker.overlap (%d) must be in [0, chunker.size=%d)",
				domain.ErrInvalidChunkConfig, overlap, c.Chunker.Size)
		}
	case "sentence":
	default:
		return fmt.Errorf("unknown chunker: %s", c.Chunker.Type)
	}
	switch c.Embedder.Type {
	case "gemini", "openai", "tfidf":
	default:
		return fmt.Errorf("unknown embedder: %s", c.Embedder.Type)
	}
	switch c.Generator.Type {
	case "gemini", "openai", "none":
	default:
		return fmt.Errorf("unknown generator: %s", c.Generator.Type)
	}
	switch c.Summarizer.Type {
	case "frequency", "none":
	default:
		return fmt.Errorf("unknown summarizer: %s", c.Summarizer.Type)
	}
	if deref(c.Chunker.MinLength) < 0 {
		return fmt.Errorf("%w: chunker.min_length must not be negative", domain.ErrInvalidChunkConfig)
	}
	if k := deref(c.Retrieval.TopK); k < 0 {
		return fmt.Errorf("retrieval.top_k must not be negative, got %d", k)
	}
	return nil
}

// Int returns a pointer to v, for the optional integer settings.
func Int(v int) *int { return &v }

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
