package config

// Retrieval defaults. MaxChunkSize is an approximate token budget, TopK the
// result cap, MinScore the inclusion threshold.
const (
	DefaultMaxChunkSize = 800
	DefaultTopK         = 3
	DefaultMinScore     = 0.1
)

// ApplyDefaults sets default values for any zero or invalid values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8384
	}
	if cfg.Retrieval.MaxChunkSize <= 0 {
		cfg.Retrieval.MaxChunkSize = DefaultMaxChunkSize
	}
	if cfg.Retrieval.TopK <= 0 {
		cfg.Retrieval.TopK = DefaultTopK
	}
	if cfg.Retrieval.MinScore <= 0 {
		cfg.Retrieval.MinScore = DefaultMinScore
	}
	if cfg.Corpus.Extensions == nil {
		cfg.Corpus.Extensions = []string{".txt", ".md", ".pdf", ".docx", ".xlsx", ".xlsm"}
	}
	// Watch defaults to true once there is something to watch.
	if len(cfg.Corpus.Paths) > 0 && cfg.Corpus.Watch == nil {
		t := true
		cfg.Corpus.Watch = &t
	}
	if cfg.Library.DatabasePath == "" {
		cfg.Library.DatabasePath = "/usr/local/var/portico/library.db"
	}
}
