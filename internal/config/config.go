// Package config provides configuration loading and structs for the Portico server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Corpus    CorpusConfig    `yaml:"corpus"`
	Library   LibraryConfig   `yaml:"library"`
	Remote    RemoteConfig    `yaml:"remote"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// RetrievalConfig holds chunking and ranking settings. Values are fixed when
// the index is built; a running index never sees them change.
type RetrievalConfig struct {
	// MaxChunkSize is the approximate token budget per chunk.
	MaxChunkSize int `yaml:"max_chunk_size"`
	// TopK caps the number of results a search returns.
	TopK int `yaml:"top_k"`
	// MinScore is the inclusion threshold for scored chunks.
	MinScore float64 `yaml:"min_score"`
}

// CorpusConfig holds filesystem corpus settings.
type CorpusConfig struct {
	Paths      []string `yaml:"paths"`
	Extensions []string `yaml:"extensions"`
	Watch      *bool    `yaml:"watch"`
}

// WatchOrDefault returns whether corpus paths are watched for changes;
// defaults to true when unset.
func (c *CorpusConfig) WatchOrDefault() bool {
	if c.Watch != nil {
		return *c.Watch
	}
	return true
}

// LibraryConfig holds the document library location.
type LibraryConfig struct {
	Enabled      *bool  `yaml:"enabled"`
	DatabasePath string `yaml:"database_path"`
}

// EnabledOrDefault returns whether the library is active; defaults to true
// when unset.
func (l *LibraryConfig) EnabledOrDefault() bool {
	if l.Enabled != nil {
		return *l.Enabled
	}
	return true
}

// RemoteConfig holds settings for the remote document provider placeholder.
// No fetch protocol is implemented; an enabled remote only logs its intent.
type RemoteConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
}

// Load reads and parses the config file at path, applies defaults, and
// expands paths. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Library.DatabasePath = expandPath(cfg.Library.DatabasePath, configDir)
	for i := range cfg.Corpus.Paths {
		cfg.Corpus.Paths[i] = expandPath(cfg.Corpus.Paths[i], configDir)
	}

	return &cfg, nil
}

// Save writes the config to path. Used for persisting corpus path add/remove.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative
// to configDir; other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
