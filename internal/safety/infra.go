package safety

import (
	"context"
	"database/sql"
	"fmt"

	json "github.com/goccy/go-json"
)

type PostgresHistoryRepo struct {
	db *sql.DB
}

func NewPostgresHistoryRepo(db *sql.DB) *PostgresHistoryRepo {
	return &PostgresHistoryRepo{db: db}
}

func (r *PostgresHistoryRepo) Save(ctx context.Context, userID string, a Assessment) error {
	concerns, err := json.Marshal(a.Concerns)
	if err != nil {
		return fmt.Errorf("marshal concerns: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO safety_history (
			user_id, risk_level, concerns, emergency_protocol,
			blocked, requires_review, confidence, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, userID, a.RiskLevel, string(concerns), a.EmergencyProtocol,
		a.Blocked, a.RequiresReview, a.Confidence, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert safety_history: %w", err)
	}

	return nil
}

func (r *PostgresHistoryRepo) Recent(ctx context.Context, userID string, limit int) ([]Assessment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT risk_level, concerns, emergency_protocol,
		       blocked, requires_review, confidence, created_at
		FROM safety_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent assessments: %w", err)
	}
	defer rows.Close()

	var out []Assessment
	for rows.Next() {
		var a Assessment
		var concerns string

		err := rows.Scan(
			&a.RiskLevel, &concerns, &a.EmergencyProtocol,
			&a.Blocked, &a.RequiresReview, &a.Confidence, &a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}

		if err := json.Unmarshal([]byte(concerns), &a.Concerns); err != nil {
			return nil, fmt.Errorf("unmarshal concerns: %w", err)
		}

		out = append(out, a)
	}

	// хронологический порядок
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	return out, rows.Err()
}
