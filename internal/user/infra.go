package user

import (
	"context"
	"database/sql"
)

type infra struct {
	db *sql.DB
}

func NewInfra(db *sql.DB) Infra {
	return &infra{db: db}
}

func (i *infra) ResetUser(ctx context.Context, userID string) error {
	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// 1) переписка
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM records WHERE user_id = $1
	`, userID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM history_state WHERE user_id = $1
	`, userID); err != nil {
		return err
	}

	// 2) анализы
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM emotion_history WHERE user_id = $1
	`, userID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM safety_history WHERE user_id = $1
	`, userID); err != nil {
		return err
	}

	// 3) опросники
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM assessments WHERE user_id = $1
	`, userID); err != nil {
		return err
	}

	return tx.Commit()
}
