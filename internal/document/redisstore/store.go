// Package redisstore keeps document metadata in Redis: one hash per document
// plus a set indexing the known ids.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/howl/internal/document"
	"github.com/davidbz/howl/internal/observability"
)

// Config contains Redis connection settings. An empty Addr selects the
// in-memory store instead.
type Config struct {
	Addr      string        `env:"REDIS_ADDR"`
	Password  string        `env:"REDIS_PASSWORD"`
	DB        int           `env:"REDIS_DB"           envDefault:"0"`
	KeyPrefix string        `env:"REDIS_KEY_PREFIX"   envDefault:"howl"`
	TTL       time.Duration `env:"REDIS_DOCUMENT_TTL" envDefault:"0s"`
}

// Enabled reports whether a Redis address is configured.
func (c *Config) Enabled() bool {
	return c != nil && c.Addr != ""
}

// NewClient creates a Redis client from cfg.
func NewClient(cfg *Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// record is the hash layout of one document.
type record struct {
	ID          string `redis:"id"`
	Filename    string `redis:"filename"`
	ContentType string `redis:"content_type"`
	Size        int64  `redis:"size"`
	Status      string `redis:"status"`
	Chunks      int    `redis:"chunks"`
	CreatedAt   string `redis:"created_at"`
}

// Store implements document.Store on Redis.
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewStore creates a store on client. A positive ttl expires documents.
func NewStore(client *redis.Client, prefix string, ttl time.Duration) (*Store, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	if prefix == "" {
		prefix = "howl"
	}

	return &Store{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}, nil
}

func (s *Store) docKey(id string) string {
	return s.prefix + ":document:" + id
}

func (s *Store) indexKey() string {
	return s.prefix + ":documents"
}

// Save writes the document hash and index entry atomically.
func (s *Store) Save(ctx context.Context, doc *document.Document) error {
	if doc == nil || doc.ID == "" {
		return fmt.Errorf("%w: document id is required", document.ErrInvalidInput)
	}

	rec := record{
		ID:          doc.ID,
		Filename:    doc.Filename,
		ContentType: doc.ContentType,
		Size:        doc.Size,
		Status:      doc.Status,
		Chunks:      doc.Chunks,
		CreatedAt:   doc.CreatedAt.UTC().Format(time.RFC3339Nano),
	}

	key := s.docKey(doc.ID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, rec)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		pipe.SAdd(ctx, s.indexKey(), doc.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save document %s: %w", doc.ID, err)
	}

	return nil
}

// Get loads one document.
func (s *Store) Get(ctx context.Context, id string) (*document.Document, error) {
	cmd := s.client.HGetAll(ctx, s.docKey(id))
	if err := cmd.Err(); err != nil {
		return nil, fmt.Errorf("failed to load document %s: %w", id, err)
	}
	if len(cmd.Val()) == 0 {
		return nil, fmt.Errorf("%w: %s", document.ErrNotFound, id)
	}

	var rec record
	if err := cmd.Scan(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
	}

	return rec.toDocument()
}

// List returns every indexed document, newest first. Index entries whose
// hash expired are pruned.
func (s *Store) List(ctx context.Context) ([]*document.Document, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	docs := make([]*document.Document, 0, len(ids))
	var stale []interface{}
	for _, id := range ids {
		doc, getErr := s.Get(ctx, id)
		if errors.Is(getErr, document.ErrNotFound) {
			stale = append(stale, id)
			continue
		}
		if getErr != nil {
			return nil, getErr
		}
		docs = append(docs, doc)
	}

	if len(stale) > 0 {
		if err := s.client.SRem(ctx, s.indexKey(), stale...).Err(); err != nil {
			observability.FromContext(ctx).Warn("failed to prune document index",
				observability.Int("stale", len(stale)),
				observability.Error(err))
		}
	}

	document.SortNewestFirst(docs)
	return docs, nil
}

// Delete removes the document hash and its index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, s.docKey(id))
		pipe.SRem(ctx, s.indexKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}

	if del.Val() == 0 {
		return fmt.Errorf("%w: %s", document.ErrNotFound, id)
	}
	return nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r record) toDocument() (*document.Document, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", r.CreatedAt, err)
	}

	return &document.Document{
		ID:          r.ID,
		Filename:    r.Filename,
		ContentType: r.ContentType,
		Size:        r.Size,
		Status:      r.Status,
		Chunks:      r.Chunks,
		CreatedAt:   createdAt,
	}, nil
}
