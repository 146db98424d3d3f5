package kb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Vovarama1992/mental_support/internal/config"
	pgvector "github.com/pgvector/pgvector-go"
)

type PostgresStore struct {
	db    *sql.DB
	table string
}

func NewPostgresStore(db *sql.DB, cfg config.VectorConfig) *PostgresStore {
	return &PostgresStore{
		db:    db,
		table: cfg.Table,
	}
}

func (s *PostgresStore) Upsert(ctx context.Context, doc Document, embedding []float32) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, content, source, embedding, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			content   = EXCLUDED.content,
			source    = EXCLUDED.source,
			embedding = EXCLUDED.embedding
	`, s.table)

	_, err := s.db.ExecContext(ctx, query,
		doc.ID, doc.Content, doc.Source, pgvector.NewVector(embedding), doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", s.table, err)
	}
	return nil
}

func (s *PostgresStore) Search(ctx context.Context, embedding []float32, topK int) ([]Document, error) {
	// косинусная близость
	query := fmt.Sprintf(`
		SELECT id, content, source, created_at
		FROM %s
		ORDER BY embedding <=> $1
		LIMIT $2
	`, s.table)

	rows, err := s.db.QueryContext(ctx, query, pgvector.NewVector(embedding), topK)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", s.table, err)
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.Content, &d.Source, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, d)
	}

	return out, rows.Err()
}
