package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Philosophiser/teams-agent-portico/internal/extract"
	"github.com/Philosophiser/teams-agent-portico/internal/models"
)

// Dir loads documents from configured filesystem roots. A root may be a
// directory, walked recursively, or a single file, and roots can be added
// and removed at runtime. Missing roots and unreadable entries are logged
// and skipped so one bad path never blocks the rest of the corpus.
type Dir struct {
	mu         sync.Mutex
	roots      []string
	extensions []string
	extractor  *extract.Extractor
	logger     *zap.Logger
}

// DirOption configures a Dir source.
type DirOption func(*Dir)

// WithLogger sets the logger used for skip and progress events.
func WithLogger(l *zap.Logger) DirOption {
	return func(d *Dir) {
		d.logger = l
	}
}

// NewDir creates a filesystem source over roots, loading only files whose
// extension appears in extensions. An empty extension list allows all files.
func NewDir(roots, extensions []string, opts ...DirOption) *Dir {
	d := &Dir{
		roots:      roots,
		extensions: extensions,
		extractor:  extract.NewExtractor(),
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Name implements Source.
func (d *Dir) Name() string {
	return "filesystem"
}

// Load walks every root and extracts one document per readable file. The
// citation is the file's path relative to its root, or the base name when
// the root is a single file.
func (d *Dir) Load(ctx context.Context) ([]models.Document, error) {
	d.mu.Lock()
	roots := append([]string(nil), d.roots...)
	d.mu.Unlock()

	var docs []models.Document

	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return docs, err
		}

		info, err := os.Stat(root)
		if err != nil {
			d.logger.Warn("corpus root missing, skipping",
				zap.String("root", root),
				zap.Error(err))
			continue
		}

		if !info.IsDir() {
			if doc, ok := d.loadFile(root, filepath.Base(root)); ok {
				docs = append(docs, doc)
			}
			continue
		}

		walkErr := filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
			if err != nil {
				d.logger.Debug("skipping unreadable entry",
					zap.String("path", path),
					zap.Error(err))
				return nil
			}
			if entry.IsDir() {
				return nil
			}
			if !d.extensionAllowed(path) {
				return nil
			}

			citation, relErr := filepath.Rel(root, path)
			if relErr != nil {
				citation = filepath.Base(path)
			}
			if doc, ok := d.loadFile(path, citation); ok {
				docs = append(docs, doc)
			}
			return nil
		})
		if walkErr != nil {
			d.logger.Warn("walk failed for corpus root",
				zap.String("root", root),
				zap.Error(walkErr))
		}
	}

	return docs, nil
}

// loadFile extracts one file into a document. Extraction failures and empty
// results are logged and reported as not-ok.
func (d *Dir) loadFile(path, citation string) (models.Document, bool) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return models.Document{}, false
	}

	text, err := d.extractor.Extract(path)
	if err != nil {
		d.logger.Debug("skipping unreadable file",
			zap.String("path", path),
			zap.Error(err))
		return models.Document{}, false
	}
	if strings.TrimSpace(text) == "" {
		d.logger.Debug("skipping empty file", zap.String("path", path))
		return models.Document{}, false
	}

	d.logger.Debug("loaded corpus file", zap.String("path", path))

	return models.Document{Citation: citation, Content: text}, true
}

// AddRoot adds a filesystem root for subsequent loads. It reports whether
// the root was not already present.
func (d *Dir) AddRoot(path string) bool {
	clean := filepath.Clean(path)

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, r := range d.roots {
		if filepath.Clean(r) == clean {
			return false
		}
	}
	d.roots = append(d.roots, path)
	return true
}

// RemoveRoot drops a filesystem root. It reports whether the root was
// present.
func (d *Dir) RemoveRoot(path string) bool {
	clean := filepath.Clean(path)

	d.mu.Lock()
	defer d.mu.Unlock()

	for i, r := range d.roots {
		if filepath.Clean(r) == clean {
			d.roots = append(d.roots[:i], d.roots[i+1:]...)
			return true
		}
	}
	return false
}

// Roots returns a copy of the current roots.
func (d *Dir) Roots() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]string, len(d.roots))
	copy(out, d.roots)
	return out
}

// extensionAllowed reports whether the file's extension is in the configured
// list. Comparison ignores case and leading dots.
func (d *Dir) extensionAllowed(path string) bool {
	if len(d.extensions) == 0 {
		return true
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, allowed := range d.extensions {
		if strings.ToLower(strings.TrimPrefix(allowed, ".")) == ext {
			return true
		}
	}

	return false
}
