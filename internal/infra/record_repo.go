package infra

import (
	"context"
	"database/sql"
	"time"

	"github.com/Vovarama1992/mental_support/internal/ports"
)

type recordRepo struct {
	db *sql.DB
}

func NewRecordRepo(db *sql.DB) ports.RecordRepo {
	return &recordRepo{db: db}
}

func (r *recordRepo) CreateText(ctx context.Context, userID, role, text string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO records (user_id, role, record_type, text_content, created_at)
		VALUES ($1, $2, 'text', $3, $4)
		RETURNING id
	`, userID, role, text, time.Now()).Scan(&id)
	return id, err
}

func (r *recordRepo) CreateVoice(ctx context.Context, userID, role, text, audioURL string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO records (user_id, role, record_type, text_content, audio_url, created_at)
		VALUES ($1, $2, 'voice', $3, $4, $5)
		RETURNING id
	`, userID, role, text, audioURL, time.Now()).Scan(&id)
	return id, err
}

func (r *recordRepo) GetHistory(ctx context.Context, userID string) ([]ports.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, role, record_type, text_content, audio_url, created_at
		FROM records
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (r *recordRepo) GetLastNRecords(ctx context.Context, userID string, n int) ([]ports.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, role, record_type, text_content, audio_url, created_at
		FROM records
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}

	// хронологический порядок
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

func scanRecords(rows *sql.Rows) ([]ports.Record, error) {
	var records []ports.Record
	for rows.Next() {
		var rec ports.Record
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.Role,
			&rec.Kind,
			&rec.Text,
			&rec.AudioURL,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *recordRepo) ListUsers(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT user_id
		FROM records
		ORDER BY user_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *recordRepo) UpsertHistoryState(ctx context.Context, userID string, lastN, totalTokens int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO history_state (user_id, last_n_records, total_tokens, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET last_n_records = $2, total_tokens = $3, updated_at = NOW()
	`, userID, lastN, totalTokens)
	return err
}

func (r *recordRepo) GetHistoryState(ctx context.Context, userID string) (int, int, error) {
	var lastN, totalTokens int
	err := r.db.QueryRowContext(ctx, `
		SELECT last_n_records, total_tokens
		FROM history_state
		WHERE user_id = $1
	`, userID).Scan(&lastN, &totalTokens)
	if err == sql.ErrNoRows {
		return 0, 0, nil
	}
	return lastN, totalTokens, err
}

func (r *recordRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM records
		WHERE user_id = $1
	`, userID)
	return err
}
