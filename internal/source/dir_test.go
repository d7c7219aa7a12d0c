package source

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Philosophiser/teams-agent-portico/internal/models"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}

	return path
}

func TestDir_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "alpha.txt", "First document")
	writeFile(t, dir, filepath.Join("notes", "beta.md"), "Second document")

	src := NewDir([]string{dir}, []string{".txt", ".md"})

	docs, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []models.Document{
		{Citation: "alpha.txt", Content: "First document"},
		{Citation: filepath.Join("notes", "beta.md"), Content: "Second document"},
	}
	if !reflect.DeepEqual(docs, want) {
		t.Errorf("Load() = %+v, want %+v", docs, want)
	}
}

func TestDir_Load_ExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "kept.txt", "Kept")
	writeFile(t, dir, "skipped.log", "Skipped")

	src := NewDir([]string{dir}, []string{".txt"})

	docs, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(docs) != 1 || docs[0].Citation != "kept.txt" {
		t.Errorf("Load() = %+v, want only kept.txt", docs)
	}
}

func TestDir_Load_ExtensionCaseAndDots(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "upper.TXT", "Upper")

	tests := []struct {
		name       string
		extensions []string
	}{
		{"lowercase with dot", []string{".txt"}},
		{"uppercase without dot", []string{"TXT"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewDir([]string{dir}, tt.extensions)

			docs, err := src.Load(context.Background())
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if len(docs) != 1 {
				t.Errorf("Load() found %d documents, want 1", len(docs))
			}
		})
	}
}

func TestDir_Load_EmptyExtensionsAllowsAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "anything.log", "Log content")

	src := NewDir([]string{dir}, nil)

	docs, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("Load() found %d documents, want 1", len(docs))
	}
}

func TestDir_Load_MissingRoot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "present.txt", "Present")

	src := NewDir([]string{filepath.Join(dir, "no-such-dir"), dir}, []string{".txt"})

	docs, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(docs) != 1 || docs[0].Citation != "present.txt" {
		t.Errorf("Load() = %+v, want only present.txt", docs)
	}
}

func TestDir_Load_SingleFileRoot(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "standalone.txt", "Standalone document")

	src := NewDir([]string{path}, []string{".txt"})

	docs, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []models.Document{{Citation: "standalone.txt", Content: "Standalone document"}}
	if !reflect.DeepEqual(docs, want) {
		t.Errorf("Load() = %+v, want %+v", docs, want)
	}
}

func TestDir_Load_SkipsEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.txt", "")
	writeFile(t, dir, "blank.txt", "   \n\t\n")
	writeFile(t, dir, "full.txt", "Real content")

	src := NewDir([]string{dir}, []string{".txt"})

	docs, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(docs) != 1 || docs[0].Citation != "full.txt" {
		t.Errorf("Load() = %+v, want only full.txt", docs)
	}
}

func TestDir_Load_SkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.docx", "this is not a zip archive")
	writeFile(t, dir, "good.txt", "Good content")

	src := NewDir([]string{dir}, []string{".docx", ".txt"})

	docs, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(docs) != 1 || docs[0].Citation != "good.txt" {
		t.Errorf("Load() = %+v, want only good.txt", docs)
	}
}

func TestDir_Load_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.txt", "Content")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewDir([]string{dir}, []string{".txt"})

	if _, err := src.Load(ctx); err == nil {
		t.Error("Load() with cancelled context expected error, got nil")
	}
}

func TestDir_AddRootRemoveRoot(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, first, "a.txt", "From first")
	writeFile(t, second, "b.txt", "From second")

	src := NewDir([]string{first}, []string{".txt"})

	if !src.AddRoot(second) {
		t.Error("AddRoot should report a new root")
	}
	if src.AddRoot(second) {
		t.Error("AddRoot should report an existing root as already present")
	}

	docs, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("Load() found %d documents, want 2", len(docs))
	}

	if !src.RemoveRoot(first) {
		t.Error("RemoveRoot should report a present root")
	}
	if src.RemoveRoot(first) {
		t.Error("RemoveRoot should report a missing root")
	}

	docs, err = src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(docs) != 1 || docs[0].Citation != "b.txt" {
		t.Errorf("Load() after remove = %+v, want only b.txt", docs)
	}

	if got := src.Roots(); !reflect.DeepEqual(got, []string{second}) {
		t.Errorf("Roots() = %v, want [%s]", got, second)
	}
}

func TestDir_Name(t *testing.T) {
	if got := NewDir(nil, nil).Name(); got != "filesystem" {
		t.Errorf("Name() = %q, want %q", got, "filesystem")
	}
}
