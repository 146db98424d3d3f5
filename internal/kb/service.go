package kb

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/Vovarama1992/mental_support/internal/config"
	"github.com/Vovarama1992/mental_support/internal/metrics"
)

type service struct {
	store    Store
	embedder Embedder
	cfg      config.VectorConfig
	emb      config.EmbeddingConfig
}

func NewService(store Store, embedder Embedder, cfg config.VectorConfig, emb config.EmbeddingConfig) Service {
	return &service{
		store:    store,
		embedder: embedder,
		cfg:      cfg,
		emb:      emb,
	}
}

// docID — одинаковый контент всегда получает одинаковый id
func docID(content string) string {
	sum := sha256.Sum256([]byte(content))
	return "doc_" + hex.EncodeToString(sum[:8])
}

func (s *service) AddDocument(ctx context.Context, content, source string) (string, error) {
	embedding, err := s.embed(ctx, content)
	if err != nil {
		return "", fmt.Errorf("embed document: %w", err)
	}

	doc := Document{
		ID:        docID(content),
		Content:   content,
		Source:    source,
		CreatedAt: time.Now(),
	}

	if err := s.store.Upsert(ctx, doc, embedding); err != nil {
		return "", fmt.Errorf("upsert document: %w", err)
	}

	return doc.ID, nil
}

func (s *service) Search(ctx context.Context, query string, topK int) ([]Document, error) {
	if topK <= 0 {
		topK = s.cfg.TopK
	}

	embedding, err := s.embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	return s.store.Search(ctx, embedding, topK)
}

func (s *service) Snippets(ctx context.Context, query string, topK int) ([]string, error) {
	docs, err := s.Search(ctx, query, topK)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Content)
	}
	return out, nil
}

func (s *service) embed(ctx context.Context, text string) ([]float32, error) {
	start := time.Now()
	embedding, err := s.embedder.GetEmbedding(ctx, text)
	if err != nil {
		return nil, err
	}
	metrics.ObserveEmbeddingTime(time.Since(start))

	if len(embedding) != s.emb.Dimension {
		return nil, fmt.Errorf("embedding dimension %d, want %d", len(embedding), s.emb.Dimension)
	}
	return embedding, nil
}
