package emotion

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

func (r *PostgresHistoryRepo) Save(ctx context.Context, userID string, a Analysis) error {
	secondary, err := json.Marshal(a.SecondaryEmotions)
	if err != nil {
		return fmt.Errorf("marshal secondary: %w", err)
	}
	triggers, err := json.Marshal(a.Triggers)
	if err != nil {
		return fmt.Errorf("marshal triggers: %w", err)
	}
	clinical, err := json.Marshal(a.ClinicalIndicators)
	if err != nil {
		return fmt.Errorf("marshal clinical: %w", err)
	}
	patterns, err := json.Marshal(a.PatternChanges)
	if err != nil {
		return fmt.Errorf("marshal patterns: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO emotion_history (
			user_id, primary_emotion, secondary_emotions, intensity,
			triggers, clinical_indicators, pattern_changes,
			confidence, compound, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, userID, a.PrimaryEmotion, string(secondary), a.Intensity,
		string(triggers), string(clinical), string(patterns),
		a.Confidence, a.Compound, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert emotion_history: %w", err)
	}

	return nil
}

func (r *PostgresHistoryRepo) Last(ctx context.Context, userID string) (*Analysis, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT primary_emotion, secondary_emotions, intensity,
		       triggers, clinical_indicators, pattern_changes,
		       confidence, compound, created_at
		FROM emotion_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, userID)

	a, err := scanAnalysis(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last analysis: %w", err)
	}
	return &a, nil
}

func (r *PostgresHistoryRepo) Recent(ctx context.Context, userID string, limit int) ([]Analysis, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT primary_emotion, secondary_emotions, intensity,
		       triggers, clinical_indicators, pattern_changes,
		       confidence, compound, created_at
		FROM emotion_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent analyses: %w", err)
	}
	defer rows.Close()

	var out []Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	// хронологический порядок
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var a Analysis
	var secondary, triggers, clinical, patterns string

	err := row.Scan(
		&a.PrimaryEmotion, &secondary, &a.Intensity,
		&triggers, &clinical, &patterns,
		&a.Confidence, &a.Compound, &a.CreatedAt,
	)
	if err != nil {
		return Analysis{}, err
	}

	if err := json.Unmarshal([]byte(secondary), &a.SecondaryEmotions); err != nil {
		return Analysis{}, fmt.Errorf("unmarshal secondary: %w", err)
	}
	if err := json.Unmarshal([]byte(triggers), &a.Triggers); err != nil {
		return Analysis{}, fmt.Errorf("unmarshal triggers: %w", err)
	}
	if err := json.Unmarshal([]byte(clinical), &a.ClinicalIndicators); err != nil {
		return Analysis{}, fmt.Errorf("unmarshal clinical: %w", err)
	}
	if err := json.Unmarshal([]byte(patterns), &a.PatternChanges); err != nil {
		return Analysis{}, fmt.Errorf("unmarshal patterns: %w", err)
	}

	return a, nil
}
