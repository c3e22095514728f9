// Package document manages uploaded research documents and the canned
// summarization and question answering built on them.
package document

import (
	"context"
	"errors"
	"time"
)

// StatusProcessed marks a document that finished ingestion.
const StatusProcessed = "processed"

var (
	// ErrNotFound is returned for unknown document ids.
	ErrNotFound = errors.New("document not found")

	// ErrUnsupportedType is returned for content types outside the allow-list.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrTooLarge is returned when an upload exceeds the configured limit.
	ErrTooLarge = errors.New("document too large")

	// ErrInvalidInput marks malformed uploads and questions.
	ErrInvalidInput = errors.New("invalid input")
)

// Document is the stored metadata of one upload.
type Document struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Status      string    `json:"status"`
	Chunks      int       `json:"chunks"`
	CreatedAt   time.Time `json:"created_at"`
}

// Summary is the result of summarizing a document.
type Summary struct {
	ID                string   `json:"id"`
	Summary           string   `json:"summary"`
	KeyPoints         []string `json:"key_points"`
	WordCount         int      `json:"word_count"`
	EstimatedReadTime string   `json:"estimated_read_time"`
}

// Source points at the part of a document an answer relies on.
type Source struct {
	Page      int     `json:"page"`
	Relevance float64 `json:"relevance"`
}

// Answer is the result of asking a question about a document.
type Answer struct {
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Sources    []Source `json:"sources"`
	Confidence float64  `json:"confidence"`
}

// Store persists document metadata.
type Store interface {
	Save(ctx context.Context, doc *Document) error
	Get(ctx context.Context, id string) (*Document, error)
	List(ctx context.Context) ([]*Document, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
