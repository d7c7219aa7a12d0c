// Package library persists user-submitted documents in SQLite so they
// survive restarts and corpus reloads.
package library

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Philosophiser/teams-agent-portico/internal/models"
)

// Library stores documents submitted through the API or CLI. It satisfies
// the corpus source interface, so library documents are searched alongside
// filesystem documents.
type Library struct {
	db *sql.DB
}

// Open opens or creates the library database at dbPath and initializes the
// schema. Parent directories are created if they do not exist.
func Open(dbPath string) (*Library, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Library{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		citation TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents(created_at);
	`
	_, err := db.Exec(schema)
	return err
}

// Add inserts a document and returns it with its assigned ID. The caller is
// expected to have validated the input.
func (l *Library) Add(ctx context.Context, input models.DocumentInput) (models.Document, error) {
	doc := models.Document{
		ID:       uuid.New().String(),
		Citation: input.Citation,
		Content:  input.Content,
	}

	_, err := l.db.ExecContext(ctx,
		`INSERT INTO documents (id, citation, content, created_at) VALUES (?, ?, ?, ?)`,
		doc.ID, doc.Citation, doc.Content, time.Now(),
	)
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to insert document: %w", err)
	}

	return doc, nil
}

// Get returns a document by ID.
func (l *Library) Get(ctx context.Context, id string) (models.Document, error) {
	var doc models.Document

	err := l.db.QueryRowContext(ctx,
		`SELECT id, citation, content FROM documents WHERE id = ?`, id,
	).Scan(&doc.ID, &doc.Citation, &doc.Content)

	if err == sql.ErrNoRows {
		return models.Document{}, fmt.Errorf("document not found: %s", id)
	}
	if err != nil {
		return models.Document{}, err
	}

	return doc, nil
}

// Remove deletes a document by ID. Removing an unknown ID is an error.
func (l *Library) Remove(ctx context.Context, id string) error {
	result, err := l.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("document not found: %s", id)
	}
	return nil
}

// List returns all documents in insertion order.
func (l *Library) List(ctx context.Context) ([]models.Document, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, citation, content FROM documents ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(&doc.ID, &doc.Citation, &doc.Content); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Count returns the number of stored documents.
func (l *Library) Count(ctx context.Context) (int, error) {
	var count int
	err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count)
	return count, err
}

// Name implements the corpus source interface.
func (l *Library) Name() string {
	return "library"
}

// Load implements the corpus source interface.
func (l *Library) Load(ctx context.Context) ([]models.Document, error) {
	return l.List(ctx)
}

// Close closes the database connection.
func (l *Library) Close() error {
	return l.db.Close()
}
