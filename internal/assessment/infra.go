package assessment

import (
	"context"
	"database/sql"
	"fmt"

	json "github.com/goccy/go-json"
)

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Save(ctx context.Context, userID string, rec Record) error {
	answers, err := json.Marshal(rec.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO assessments (user_id, answers, score, severity, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, userID, string(answers), rec.Score, rec.Severity, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}

	return nil
}

func (r *PostgresRepo) Recent(ctx context.Context, userID string, limit int) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT answers, score, severity, created_at
		FROM assessments
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent assessments: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var answers string

		if err := rows.Scan(&answers, &rec.Score, &rec.Severity, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		if err := json.Unmarshal([]byte(answers), &rec.Answers); err != nil {
			return nil, fmt.Errorf("unmarshal answers: %w", err)
		}

		out = append(out, rec)
	}

	// хронологический порядок
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	return out, rows.Err()
}
