// Package main is the Portico CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Philosophiser/teams-agent-portico/internal/cli"
	"github.com/Philosophiser/teams-agent-portico/internal/config"
	"github.com/Philosophiser/teams-agent-portico/internal/corpus"
	"github.com/Philosophiser/teams-agent-portico/internal/extract"
	"github.com/Philosophiser/teams-agent-portico/internal/library"
	"github.com/Philosophiser/teams-agent-portico/internal/models"
	"github.com/Philosophiser/teams-agent-portico/internal/server"
	"github.com/Philosophiser/teams-agent-portico/internal/source"
	"github.com/Philosophiser/teams-agent-portico/internal/watcher"
	"github.com/Philosophiser/teams-agent-portico/pkg/utils"
)

var version = "dev"

const (
	defaultConfigPath = "/usr/local/etc/portico/config.yaml"
	defaultServerURL  = "http://localhost:8384"
)

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used, so that "portico server" from the project dir uses the
// project's config (including debug). Returns the config and the path that
// was actually loaded (for saving, etc.).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "context":
		runContext()
	case "docs":
		runDocs()
	case "corpus":
		runCorpus()
	case "status":
		runStatus()
	case "reload":
		runReload()
	case "version", "--version", "-v":
		fmt.Printf("portico version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (corpus loads, watch events, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	if _, err := components.Corpus.Reload(context.Background()); err != nil {
		logger.Fatal("Initial corpus load failed", zap.Error(err))
	}

	var watchSvc *watcher.Watcher
	var rootWatch server.RootWatcher
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Corpus.WatchOrDefault() {
		watchSvc = watcher.NewWatcher(
			cfg.Corpus.Paths,
			cfg.Corpus.Extensions,
			func() {
				if _, err := components.Corpus.Reload(context.Background()); err != nil {
					logger.Warn("watch reload failed", zap.Error(err))
				}
			},
			watcher.WithLogger(logger),
		)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		rootWatch = watchSvc
	}

	srv := server.NewServer(
		components.Corpus,
		components.Library,
		components.Dir,
		rootWatch,
		cfg,
		resolvedConfigPath,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if watchSvc != nil {
		watchSvc.Stop()
	}
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// printSearchUsage prints search subcommand usage.
func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: portico search [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces. Multi-word queries work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  portico search deployment checklist
  portico search "deployment checklist"        # same as above
  portico search --output json rollback steps  # structured JSON for other apps
`)
}

// buildSearchQuery joins all positional args with spaces so multi-word
// queries work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchArgsReorder moves any flags (and their values) that appear after the
// query to the front of the slice so that flag.Parse() sees them. Go's flag
// package stops at the first non-flag argument, so "portico search \"query\"
// -output json" would otherwise leave -output unparsed.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

// parseOutputFormat maps a flag value to an output format.
func parseOutputFormat(name string) (cli.OutputFormat, error) {
	switch name {
	case "json":
		return cli.OutputJSON, nil
	case "text":
		return cli.OutputText, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", name)
	}
}

func runSearch() {
	searchArgs := searchArgsReorder(os.Args[2:])

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for direct corpus mode)")
	serverURL := fs.String("server", defaultServerURL, "server URL (empty = load the corpus directly when server is not running)")
	outputFormat := fs.String("output", "text", "output format: text (human-readable) or json (parseable)")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgs)

	if fs.NArg() < 1 {
		printSearchUsage(fs)
		os.Exit(1)
	}
	queryStr := buildSearchQuery(fs.Args())
	if queryStr == "" {
		printSearchUsage(fs)
		os.Exit(1)
	}

	format, err := parseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if *serverURL != "" {
		response, err := searchViaHTTP(*serverURL, queryStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Direct corpus access (when server is not running).
	components, _, logger := mustInitDirect(*configPath)
	defer logger.Sync()
	defer components.Close()

	start := time.Now()
	results := components.Corpus.Search(queryStr)
	response := &models.SearchResponse{
		Results:   results,
		Total:     len(results),
		QueryTime: time.Since(start).Milliseconds(),
		Query:     queryStr,
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runContext() {
	contextArgs := searchArgsReorder(os.Args[2:])

	fs := flag.NewFlagSet("context", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for direct corpus mode)")
	serverURL := fs.String("server", defaultServerURL, "server URL (empty = load the corpus directly when server is not running)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(contextArgs)

	queryStr := buildSearchQuery(fs.Args())
	if queryStr == "" {
		fmt.Println("Usage: portico context [flags] <query>")
		os.Exit(1)
	}

	format, err := parseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	var rendered models.RenderedContext
	if *serverURL != "" {
		res, err := contextViaHTTP(*serverURL, queryStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Context failed: %v\n", err)
			os.Exit(1)
		}
		rendered = *res
	} else {
		components, _, logger := mustInitDirect(*configPath)
		defer logger.Sync()
		defer components.Close()
		rendered = components.Corpus.RenderContext(queryStr)
	}

	if err := cli.WriteContext(os.Stdout, &rendered, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func searchViaHTTP(serverURL, query string) (*models.SearchResponse, error) {
	body, err := json.Marshal(models.SearchRequest{Query: query})
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func contextViaHTTP(serverURL, query string) (*models.RenderedContext, error) {
	body, err := json.Marshal(models.SearchRequest{Query: query})
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/context", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var rendered models.RenderedContext
	if err := json.NewDecoder(resp.Body).Decode(&rendered); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &rendered, nil
}

func runDocs() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: portico docs <list|add|rm> [args]")
		fmt.Println("  portico docs list               List library documents")
		fmt.Println("  portico docs add <file>         Add a document to the library")
		fmt.Println("  portico docs rm <id>            Remove a document from the library")
		os.Exit(1)
	}
	sub := os.Args[2]
	fs := flag.NewFlagSet("docs", flag.ExitOnError)
	serverURL := fs.String("server", defaultServerURL, "server URL")
	outputFormat := fs.String("output", "text", "output format: text or json")
	citation := fs.String("citation", "", "citation label for the added document (default: file name)")
	_ = fs.Parse(os.Args[3:])

	format, err := parseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	switch sub {
	case "list":
		docsList(*serverURL, format)
	case "add":
		if fs.NArg() < 1 {
			fmt.Println("Usage: portico docs add [flags] <file>")
			os.Exit(1)
		}
		docsAdd(*serverURL, fs.Arg(0), *citation)
	case "rm":
		if fs.NArg() < 1 {
			fmt.Println("Usage: portico docs rm <id>")
			os.Exit(1)
		}
		docsRemove(*serverURL, fs.Arg(0))
	default:
		fmt.Printf("Unknown docs subcommand: %s\n", sub)
		os.Exit(1)
	}
}

func docsList(serverURL string, format cli.OutputFormat) {
	resp, err := http.Get(serverURL + "/api/v1/documents")
	if err != nil {
		fmt.Printf("Request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		fmt.Printf("List failed (%d): %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	var out struct {
		Documents []models.Document `json:"documents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		fmt.Printf("Parse failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteDocuments(os.Stdout, out.Documents, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func docsAdd(serverURL, path, citation string) {
	content, err := extract.NewExtractor().Extract(path)
	if err != nil {
		fmt.Printf("Failed to read document: %v\n", err)
		os.Exit(1)
	}
	if citation == "" {
		citation = filepath.Base(path)
	}

	body, err := json.Marshal(models.DocumentInput{Citation: citation, Content: content})
	if err != nil {
		fmt.Printf("Failed to encode document: %v\n", err)
		os.Exit(1)
	}
	resp, err := http.Post(serverURL+"/api/v1/documents", "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		fmt.Printf("Add failed (%d): %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	var doc models.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		fmt.Printf("Parse failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Added: %s (%s)\n", doc.ID, doc.Citation)
}

func docsRemove(serverURL, id string) {
	req, _ := http.NewRequest(http.MethodDelete, serverURL+"/api/v1/documents/"+url.PathEscape(id), nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		fmt.Printf("Remove failed (%d): %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	fmt.Printf("Removed: %s\n", id)
}

func runCorpus() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: portico corpus <list|add|remove> [path]")
		fmt.Println("  portico corpus add <path>     Add a path to the corpus")
		fmt.Println("  portico corpus remove <path>  Remove a path from the corpus")
		fmt.Println("  portico corpus list           List corpus paths")
		os.Exit(1)
	}
	sub := os.Args[2]
	fs := flag.NewFlagSet("corpus", flag.ExitOnError)
	serverURL := fs.String("server", defaultServerURL, "server URL")
	_ = fs.Parse(os.Args[3:])
	switch sub {
	case "add":
		if fs.NArg() < 1 {
			fmt.Println("Usage: portico corpus add <path>")
			os.Exit(1)
		}
		path, _ := filepath.Abs(fs.Arg(0))
		body, _ := json.Marshal(map[string]string{"path": path})
		resp, err := http.Post(*serverURL+"/api/v1/corpus/paths", "application/json", bytes.NewReader(body))
		if err != nil {
			fmt.Printf("Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			b, _ := io.ReadAll(resp.Body)
			fmt.Printf("Add failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		fmt.Printf("Added: %s\n", path)
	case "remove":
		if fs.NArg() < 1 {
			fmt.Println("Usage: portico corpus remove <path>")
			os.Exit(1)
		}
		path, _ := filepath.Abs(fs.Arg(0))
		req, _ := http.NewRequest(http.MethodDelete, *serverURL+"/api/v1/corpus/paths?path="+url.QueryEscape(path), nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			fmt.Printf("Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Printf("Remove failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		fmt.Printf("Removed: %s\n", path)
	case "list":
		resp, err := http.Get(*serverURL + "/api/v1/corpus/paths")
		if err != nil {
			fmt.Printf("Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Printf("List failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		var out struct {
			Paths []string `json:"paths"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			fmt.Printf("Parse failed: %v\n", err)
			os.Exit(1)
		}
		for _, p := range out.Paths {
			fmt.Println(p)
		}
	default:
		fmt.Printf("Unknown corpus subcommand: %s\n", sub)
		os.Exit(1)
	}
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for direct corpus mode)")
	serverURL := fs.String("server", defaultServerURL, "server URL (empty = load the corpus directly)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	format, err := parseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	var status models.StatusResponse
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = *res
	} else {
		components, cfg, logger := mustInitDirect(*configPath)
		defer logger.Sync()
		defer components.Close()
		status = models.StatusResponse{
			Documents:    components.Corpus.DocumentCount(),
			Chunks:       components.Corpus.ChunkCount(),
			Sources:      components.Corpus.SourceNames(),
			MaxChunkSize: cfg.Retrieval.MaxChunkSize,
			TopK:         cfg.Retrieval.TopK,
			MinScore:     cfg.Retrieval.MinScore,
		}
	}

	if err := cli.WriteStatus(os.Stdout, &status, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*models.StatusResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s models.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

func runReload() {
	fs := flag.NewFlagSet("reload", flag.ExitOnError)
	serverURL := fs.String("server", defaultServerURL, "server URL")
	_ = fs.Parse(os.Args[2:])

	resp, err := http.Post(*serverURL+"/api/v1/reload", "application/json", nil)
	if err != nil {
		fmt.Printf("Request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		fmt.Printf("Reload failed (%d): %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	var out models.ReloadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		fmt.Printf("Parse failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Reloaded: %d documents, %d chunks\n", out.Documents, out.Chunks)
}

// Components holds initialized services.
type Components struct {
	Library *library.Library
	Dir     *source.Dir
	Corpus  *corpus.Manager
}

func (c *Components) Close() {
	if c.Library != nil {
		_ = c.Library.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	dir := source.NewDir(cfg.Corpus.Paths, cfg.Corpus.Extensions, source.WithLogger(logger))
	sources := []source.Source{dir}

	var lib *library.Library
	if cfg.Library.EnabledOrDefault() {
		var err error
		lib, err = library.Open(cfg.Library.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open document library: %w", err)
		}
		sources = append(sources, lib)
	}

	if cfg.Remote.Enabled {
		sources = append(sources, source.NewRemote(cfg.Remote.Endpoint, logger))
	}

	mgr := corpus.NewManager(&cfg.Retrieval, sources, corpus.WithLogger(logger))

	return &Components{
		Library: lib,
		Dir:     dir,
		Corpus:  mgr,
	}, nil
}

// mustInitDirect builds components from config and loads the corpus, exiting
// on any failure. Used by commands that run without a server.
func mustInitDirect(configPath string) (*Components, *config.Config, *zap.Logger) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	components, err := initializeComponents(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if _, err := components.Corpus.Reload(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Corpus load failed: %v\n", err)
		os.Exit(1)
	}
	return components, cfg, logger
}

func printUsage() {
	fmt.Println(`portico - Local retrieval for agent context

Usage:
  portico server [flags]            Start the HTTP server
  portico search [flags] <query>    Search the corpus
  portico context [flags] <query>   Render citation-tagged context for a query
  portico docs <list|add|rm>        Manage library documents
  portico corpus <list|add|remove>  Manage corpus paths
  portico status [flags]            Show corpus status
  portico reload [flags]            Reload the corpus from all sources
  portico version                   Show version
  portico help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/portico/config.yaml)
  --debug            Enable debug logging (corpus loads, watch events, etc.)

Search / Context Flags:
  --config string    Config file path (for direct corpus mode)
  --server string    Server URL (default: http://localhost:8384). Use empty (--server "") to load the corpus directly when server is not running.
  --output string    Output format: text or json (default: text)

Docs Flags:
  --server string    Server URL (default: http://localhost:8384)
  --citation string  Citation label for docs add (default: file name)
  --output string    Output format for docs list: text or json

Corpus / Reload Flags:
  --server string    Server URL (default: http://localhost:8384)

Examples:
  portico server
  portico search "deployment checklist"
  portico search --output json rollback steps   # structured JSON for other apps
  portico context "how do I rotate credentials"
  portico docs add runbook.md
  portico docs list
  portico corpus add /path/to/docs
  portico status
  portico reload`)
}
