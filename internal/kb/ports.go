package kb

import (
	"context"
	"time"
)

// Document — единица знаний
type Document struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

type Store interface {
	Upsert(ctx context.Context, doc Document, embedding []float32) error
	Search(ctx context.Context, embedding []float32, topK int) ([]Document, error)
}

type Embedder interface {
	GetEmbedding(ctx context.Context, text string) ([]float32, error)
}

type Service interface {
	AddDocument(ctx context.Context, content, source string) (string, error)
	Search(ctx context.Context, query string, topK int) ([]Document, error)
	// Snippets — готовые выдержки для промпта
	Snippets(ctx context.Context, query string, topK int) ([]string, error)
}
