// Package watcher watches corpus roots with fsnotify and triggers a
// debounced corpus reload when their contents change.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 400 * time.Millisecond

// Watcher watches corpus roots recursively and calls onReload once a burst
// of filesystem changes has settled. The reload is wholesale, so a single
// shared timer covers every path.
type Watcher struct {
	roots      []string
	extensions []string
	onReload   func()
	debounce   time.Duration

	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	reloadTimer *time.Timer
	rootPaths   map[string][]string // root -> watched directories under it
	started     bool

	logger *zap.Logger
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithLogger sets the logger used for event and error output.
func WithLogger(l *zap.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = l
	}
}

// WithDebounce overrides the settle delay before onReload fires.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// NewWatcher creates a watcher over roots. Only changes to files whose
// extension appears in extensions arm the reload timer; an empty list
// matches all files.
func NewWatcher(roots, extensions []string, onReload func(), opts ...WatcherOption) *Watcher {
	w := &Watcher{
		roots:      roots,
		extensions: extensions,
		onReload:   onReload,
		debounce:   defaultDebounce,
		rootPaths:  make(map[string][]string),
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Start begins watching. It runs until ctx is cancelled or Stop is called.
// A root that cannot be watched is logged and skipped.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	w.watcher = watcher
	w.started = true

	w.logger.Debug("watcher starting",
		zap.Strings("roots", w.roots),
		zap.Strings("extensions", w.extensions))

	for _, root := range w.roots {
		if err := w.addRootLocked(root); err != nil {
			w.logger.Warn("failed to watch corpus root, skipping",
				zap.String("root", root),
				zap.Error(err))
		}
	}
	w.mu.Unlock()

	go w.run(ctx, watcher)
	return nil
}

// run consumes events from its own watcher handle so Stop can nil the
// shared field without racing the select below.
func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			if err != nil {
				w.logger.Debug("watch error", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	path := ev.Name
	if !w.underRoot(path) {
		return
	}

	w.logger.Debug("watch event",
		zap.String("op", ev.Op.String()),
		zap.String("path", path))

	if ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write) {
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			w.watchNewDirectory(path)
			w.scheduleReload()
			return
		}
		if w.matchExtension(path) {
			w.scheduleReload()
		}
		return
	}

	if ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename) {
		// A removed path cannot be stat'ed, so directory removals are
		// recognized by their missing extension.
		if filepath.Ext(path) == "" || w.matchExtension(path) {
			w.scheduleReload()
		}
	}
}

// scheduleReload arms the shared timer, pushing back any pending fire so a
// burst of changes produces one reload.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.reloadTimer != nil {
		w.reloadTimer.Stop()
	}
	w.reloadTimer = time.AfterFunc(w.debounce, func() {
		w.logger.Debug("changes settled, triggering reload")
		if w.onReload != nil {
			w.onReload()
		}
	})
}

// watchNewDirectory adds a directory created after Start, and its
// subdirectories, to the watch. Files already inside it are picked up by the
// reload that follows.
func (w *Watcher) watchNewDirectory(dirPath string) {
	w.mu.Lock()
	watcher := w.watcher
	w.mu.Unlock()

	if watcher == nil {
		return
	}

	filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if addErr := watcher.Add(path); addErr != nil {
				w.logger.Debug("failed to watch new directory",
					zap.String("path", path),
					zap.Error(addErr))
			}
		}
		return nil
	})
}

func (w *Watcher) underRoot(path string) bool {
	w.mu.Lock()
	roots := append([]string(nil), w.roots...)
	w.mu.Unlock()

	clean := filepath.Clean(path)
	for _, root := range roots {
		rootClean := filepath.Clean(root)
		if rootClean == clean || inDir(rootClean, clean) {
			return true
		}
	}
	return false
}

func inDir(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (w *Watcher) matchExtension(path string) bool {
	return matchExtension(path, w.extensions)
}

func matchExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, e := range extensions {
		if strings.TrimPrefix(strings.ToLower(e), ".") == ext {
			return true
		}
	}
	return false
}

// AddRoot starts watching a new corpus root. The caller reloads the corpus
// to pick up files already present. Adding a known root is a no-op.
func (w *Watcher) AddRoot(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher == nil {
		return nil
	}
	for _, r := range w.roots {
		if filepath.Clean(r) == filepath.Clean(abs) {
			return nil
		}
	}

	if err := w.addRootLocked(abs); err != nil {
		return err
	}
	w.roots = append(w.roots, abs)

	w.logger.Debug("watch root added", zap.String("root", abs))
	return nil
}

// addRootLocked registers root and its subdirectories with the fsnotify
// watcher, creating root if it does not exist. A root that is a single file
// is watched directly.
func (w *Watcher) addRootLocked(root string) error {
	root = filepath.Clean(root)

	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(root, 0755); err != nil {
			return err
		}
		info, err = os.Stat(root)
	}
	if err != nil {
		return err
	}

	if !info.IsDir() {
		if err := w.watcher.Add(root); err != nil {
			return err
		}
		w.rootPaths[root] = []string{root}
		return nil
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			return err
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return err
	}

	w.rootPaths[root] = paths
	return nil
}

// RemoveRoot stops watching the given root. Removing an unknown root is a
// no-op. Indexed documents are only dropped by the reload that follows.
func (w *Watcher) RemoveRoot(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	abs = filepath.Clean(abs)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher == nil {
		return nil
	}

	idx := -1
	for i, r := range w.roots {
		if filepath.Clean(r) == abs {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	for _, p := range w.rootPaths[abs] {
		_ = w.watcher.Remove(p)
	}
	delete(w.rootPaths, abs)
	w.roots = append(w.roots[:idx], w.roots[idx+1:]...)

	w.logger.Debug("watch root removed", zap.String("root", abs))
	return nil
}

// Roots returns a copy of the currently watched roots.
func (w *Watcher) Roots() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	return append([]string(nil), w.roots...)
}

// Stop stops the watcher and releases resources. It is safe to call more
// than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started || w.watcher == nil {
		return
	}

	if w.reloadTimer != nil {
		w.reloadTimer.Stop()
		w.reloadTimer = nil
	}
	_ = w.watcher.Close()
	w.watcher = nil
	w.started = false
}
