package e2e

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Philosophiser/teams-agent-portico/internal/config"
	"github.com/Philosophiser/teams-agent-portico/internal/corpus"
	"github.com/Philosophiser/teams-agent-portico/internal/library"
	"github.com/Philosophiser/teams-agent-portico/internal/models"
	"github.com/Philosophiser/teams-agent-portico/internal/source"
)

const (
	e2eMaxChunkSize = 200
	e2eTopK         = 5
	e2eMinScore     = 0.1
)

func e2eRetrievalConfig() *config.RetrievalConfig {
	return &config.RetrievalConfig{
		MaxChunkSize: e2eMaxChunkSize,
		TopK:         e2eTopK,
		MinScore:     e2eMinScore,
	}
}

func TestEndToEnd_LibrarySearch(t *testing.T) {
	dir := t.TempDir()
	lib, err := library.Open(filepath.Join(dir, "library.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer lib.Close()

	ctx := context.Background()
	seed := BuildCorpus()
	if seed.TotalDocs == 0 {
		t.Fatal("corpus has no documents")
	}
	if seed.TotalQueries == 0 {
		t.Fatal("corpus has no query cases")
	}

	for _, input := range seed.DocumentInputs() {
		if _, err := lib.Add(ctx, input); err != nil {
			t.Fatalf("add document %q: %v", input.Citation, err)
		}
	}

	mgr := corpus.NewManager(e2eRetrievalConfig(), []source.Source{lib})
	resp, err := mgr.Reload(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if resp.Documents != seed.TotalDocs {
		t.Fatalf("expected %d documents after reload, got %d", seed.TotalDocs, resp.Documents)
	}

	t.Logf("loaded %d documents; running %d query cases", resp.Documents, seed.TotalQueries)

	for _, qc := range seed.Cases {
		t.Run(qc.Description, func(t *testing.T) {
			citations := resultCitations(mgr.Search(qc.Query))
			if !containsAny(citations, qc.ExpectedCitations) {
				t.Errorf("query %q: expected one of %v in results, got %v",
					qc.Query, qc.ExpectedCitations, citations)
			}
		})
	}
}

// TestEndToEnd_FileCorpusSearch writes corpus entries as real files of every
// supported extension (.txt, .md, .docx, .xlsx, .xlsm), loads them through the
// filesystem source, then runs the same query cases. Citations are the file
// names relative to the corpus root. PDF extraction is covered by
// internal/extract tests; a minimal PDF with extractable text is not generated
// here.
func TestEndToEnd_FileCorpusSearch(t *testing.T) {
	dir := t.TempDir()
	docDir := filepath.Join(dir, "docs")
	if err := os.MkdirAll(docDir, 0755); err != nil {
		t.Fatal(err)
	}

	seed := BuildCorpus()
	exts := SupportedFileExtensions
	fileCitations := make(map[string]string)
	nFiles := 0
	for i, d := range seed.Documents {
		if nFiles >= 25 {
			break
		}
		ext := exts[i%len(exts)]
		name := d.Citation + ext
		content, err := WriteMinimalFile(ext, d.Body)
		if err != nil {
			t.Fatalf("write minimal file %s: %v", name, err)
		}
		if err := os.WriteFile(filepath.Join(docDir, name), content, 0644); err != nil {
			t.Fatalf("write file %s: %v", name, err)
		}
		fileCitations[d.Citation] = name
		nFiles++
	}

	src := source.NewDir([]string{docDir}, exts)
	mgr := corpus.NewManager(e2eRetrievalConfig(), []source.Source{src})
	ctx := context.Background()

	resp, err := mgr.Reload(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if resp.Documents != nFiles {
		t.Fatalf("expected %d documents after reload, got %d", nFiles, resp.Documents)
	}

	t.Logf("loaded %d files from %s; running query cases for documents written as files", nFiles, docDir)

	var run int
	for _, qc := range seed.Cases {
		expected := make([]string, 0)
		for _, citation := range qc.ExpectedCitations {
			if name, ok := fileCitations[citation]; ok {
				expected = append(expected, name)
			}
		}
		if len(expected) == 0 {
			continue
		}
		run++
		t.Run(qc.Description, func(t *testing.T) {
			citations := resultCitations(mgr.Search(qc.Query))
			if !containsAny(citations, expected) {
				t.Errorf("query %q: expected one of %v in results, got %v",
					qc.Query, expected, citations)
			}
		})
	}
	if run == 0 {
		t.Fatal("no query cases matched the file corpus")
	}
	t.Logf("ran %d query cases against the file corpus", run)
}

func TestEndToEnd_MixedSourcesRenderContext(t *testing.T) {
	dir := t.TempDir()
	docDir := filepath.Join(dir, "docs")
	if err := os.MkdirAll(docDir, 0755); err != nil {
		t.Fatal(err)
	}
	notes := "Exceptions to the release freeze need a signed ticket. The freeze exception ticket names the approving director."
	if err := os.WriteFile(filepath.Join(docDir, "freeze-exceptions.md"), []byte(notes), 0644); err != nil {
		t.Fatal(err)
	}

	lib, err := library.Open(filepath.Join(dir, "library.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer lib.Close()

	ctx := context.Background()
	ladder := "Unresolved pages climb the escalation ladder. The escalation ladder ends at the engineering director on duty."
	if _, err := lib.Add(ctx, models.DocumentInput{Citation: "escalation-ladder", Content: ladder}); err != nil {
		t.Fatal(err)
	}

	src := source.NewDir([]string{docDir}, []string{".md"})
	mgr := corpus.NewManager(e2eRetrievalConfig(), []source.Source{src, lib})
	resp, err := mgr.Reload(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if resp.Documents != 2 {
		t.Fatalf("expected 2 documents from both sources, got %d", resp.Documents)
	}

	rc := mgr.RenderContext("freeze exception ticket")
	if len(rc.Sources) == 0 || rc.Sources[0] != "freeze-exceptions.md" {
		t.Fatalf("expected freeze-exceptions.md as top source, got %v", rc.Sources)
	}
	if !strings.Contains(rc.Content, `<context source="freeze-exceptions.md">`) {
		t.Errorf("rendered context missing tagged block:\n%s", rc.Content)
	}

	rc = mgr.RenderContext("escalation ladder duty")
	if len(rc.Sources) == 0 || rc.Sources[0] != "escalation-ladder" {
		t.Fatalf("expected escalation-ladder as top source, got %v", rc.Sources)
	}
	if !strings.Contains(rc.Content, `<context source="escalation-ladder">`) {
		t.Errorf("rendered context missing tagged block:\n%s", rc.Content)
	}
}

func TestEndToEnd_ReloadPicksUpFileChanges(t *testing.T) {
	docDir := t.TempDir()
	path := filepath.Join(docDir, "jobs.md")
	if err := os.WriteFile(path, []byte("The quarterly billing export lands in the finance bucket."), 0644); err != nil {
		t.Fatal(err)
	}

	src := source.NewDir([]string{docDir}, []string{".md"})
	mgr := corpus.NewManager(e2eRetrievalConfig(), []source.Source{src})
	ctx := context.Background()
	if _, err := mgr.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}

	if got := resultCitations(mgr.Search("billing export")); !containsAny(got, []string{"jobs.md"}) {
		t.Fatalf("expected jobs.md in results, got %v", got)
	}

	if err := os.WriteFile(path, []byte("The payroll reconciliation job runs nightly against the ledger."), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}

	if got := mgr.Search("billing export"); len(got) != 0 {
		t.Errorf("stale content still searchable after reload: %v", got)
	}
	if got := resultCitations(mgr.Search("payroll reconciliation")); !containsAny(got, []string{"jobs.md"}) {
		t.Errorf("expected jobs.md for replaced content, got %v", got)
	}
}

func resultCitations(results []models.SearchResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Citation)
	}
	return out
}

func containsAny(got []string, expected []string) bool {
	set := make(map[string]bool)
	for _, c := range got {
		set[c] = true
	}
	for _, c := range expected {
		if set[c] {
			return true
		}
	}
	return false
}
