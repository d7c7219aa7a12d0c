package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func countingReload() (func(), func() int) {
	var mu sync.Mutex
	count := 0

	onReload := func() {
		mu.Lock()
		count++
		mu.Unlock()
	}
	getCount := func() int {
		mu.Lock()
		defer mu.Unlock()
		return count
	}
	return onReload, getCount
}

func startWatcher(t *testing.T, w *Watcher) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(w.Stop)
}

func TestWatcher_ReloadOnWrite(t *testing.T) {
	dir := t.TempDir()
	onReload, count := countingReload()

	w := NewWatcher([]string{dir}, []string{".txt"}, onReload, WithDebounce(50*time.Millisecond))
	startWatcher(t, w)

	if err := writeFile(filepath.Join(dir, "f.txt"), "hello"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(400 * time.Millisecond)

	if count() < 1 {
		t.Errorf("expected at least one reload, got %d", count())
	}
}

func TestWatcher_CoalescesBurstIntoOneReload(t *testing.T) {
	dir := t.TempDir()
	onReload, count := countingReload()

	w := NewWatcher([]string{dir}, []string{".txt"}, onReload, WithDebounce(300*time.Millisecond))
	startWatcher(t, w)

	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		if err := writeFile(filepath.Join(dir, name), "content"); err != nil {
			t.Fatal(err)
		}
	}
	time.Sleep(900 * time.Millisecond)

	if count() != 1 {
		t.Errorf("expected one coalesced reload, got %d", count())
	}
}

func TestWatcher_IgnoresUnmatchedExtensions(t *testing.T) {
	dir := t.TempDir()
	onReload, count := countingReload()

	w := NewWatcher([]string{dir}, []string{".txt"}, onReload, WithDebounce(50*time.Millisecond))
	startWatcher(t, w)

	if err := writeFile(filepath.Join(dir, "ignore.xyz"), "skip"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)

	if count() != 0 {
		t.Errorf("expected no reloads for unmatched extension, got %d", count())
	}
}

func TestWatcher_ReloadOnRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	if err := writeFile(path, "hello"); err != nil {
		t.Fatal(err)
	}

	onReload, count := countingReload()
	w := NewWatcher([]string{dir}, []string{".txt"}, onReload, WithDebounce(50*time.Millisecond))
	startWatcher(t, w)

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)

	if count() < 1 {
		t.Errorf("expected at least one reload after remove, got %d", count())
	}
}

func TestWatcher_NewDirectoryIsWatched(t *testing.T) {
	dir := t.TempDir()
	onReload, count := countingReload()

	w := NewWatcher([]string{dir}, []string{".txt"}, onReload, WithDebounce(50*time.Millisecond))
	startWatcher(t, w)

	sub := filepath.Join(dir, "sub")
	if err := mkdirAll(sub); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)
	afterDir := count()
	if afterDir < 1 {
		t.Fatalf("expected a reload after directory creation, got %d", afterDir)
	}

	if err := writeFile(filepath.Join(sub, "inner.txt"), "deep content"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)

	if count() <= afterDir {
		t.Errorf("expected a reload for a file in the new directory, got %d", count())
	}
}

func TestWatcher_AddRootAndRemoveRoot(t *testing.T) {
	dir := t.TempDir()
	onReload, count := countingReload()

	w := NewWatcher(nil, []string{".txt"}, onReload, WithDebounce(50*time.Millisecond))
	startWatcher(t, w)

	if err := w.AddRoot(dir); err != nil {
		t.Fatal(err)
	}
	roots := w.Roots()
	if len(roots) != 1 || filepath.Clean(roots[0]) != filepath.Clean(dir) {
		t.Errorf("Roots() = %v", roots)
	}

	if err := writeFile(filepath.Join(dir, "f.txt"), "hello"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)
	afterAdd := count()
	if afterAdd < 1 {
		t.Fatalf("expected a reload for added root, got %d", afterAdd)
	}

	if err := w.RemoveRoot(dir); err != nil {
		t.Fatal(err)
	}
	if len(w.Roots()) != 0 {
		t.Errorf("after remove: %v", w.Roots())
	}

	if err := writeFile(filepath.Join(dir, "g.txt"), "hello"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)

	if count() != afterAdd {
		t.Errorf("expected no reloads after root removed, got %d", count()-afterAdd)
	}
}

func TestWatcher_SingleFileRoot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := writeFile(path, "initial"); err != nil {
		t.Fatal(err)
	}

	onReload, count := countingReload()
	w := NewWatcher([]string{path}, []string{".txt"}, onReload, WithDebounce(50*time.Millisecond))
	startWatcher(t, w)

	if err := writeFile(path, "changed"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)

	if count() < 1 {
		t.Errorf("expected a reload for single file root, got %d", count())
	}
}

func TestWatcher_StartCreatesMissingRoot(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "watch", "me")

	w := NewWatcher([]string{root}, []string{".txt"}, nil)
	startWatcher(t, w)

	if _, err := os.Stat(root); err != nil {
		t.Errorf("root directory should exist after Start: %v", err)
	}
}

func TestWatcher_StopIdempotent(t *testing.T) {
	w := NewWatcher([]string{t.TempDir()}, nil, nil)
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop()
}

func TestMatchExtension(t *testing.T) {
	tests := []struct {
		path       string
		extensions []string
		want       bool
	}{
		{"/a/b.txt", []string{".txt"}, true},
		{"/a/b.TXT", []string{".txt"}, true},
		{"/a/b.txt", []string{"txt"}, true},
		{"/a/b.md", []string{".txt"}, false},
		{"/a/b", nil, true},
		{"/a/b", []string{}, true},
	}
	for _, tt := range tests {
		got := matchExtension(tt.path, tt.extensions)
		if got != tt.want {
			t.Errorf("matchExtension(%q, %v) = %v, want %v", tt.path, tt.extensions, got, tt.want)
		}
	}
}

func TestInDir(t *testing.T) {
	tests := []struct {
		dir  string
		path string
		want bool
	}{
		{"/tmp/a", "/tmp/a", true},
		{"/tmp/a", "/tmp/a/b.txt", true},
		{"/tmp/a", "/tmp/b", false},
		{"/tmp/a", "/tmp/a/../b", false},
	}
	for _, tt := range tests {
		got := inDir(tt.dir, tt.path)
		if got != tt.want {
			t.Errorf("inDir(%q, %q) = %v, want %v", tt.dir, tt.path, got, tt.want)
		}
	}
}

func mkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0600)
}
