package profile

import (
	"context"
	"database/sql"
)

type repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) Repo {
	return &repo{db: db}
}

func (r *repo) Get(ctx context.Context) (*Profile, error) {
	var p Profile

	err := r.db.QueryRowContext(ctx, `
		SELECT
			model,
			text_style_prompt,
			voice_style_prompt,
			voice_id,
			welcome_text
		FROM assistant_profile
		WHERE id = 1
	`).Scan(
		&p.Model,
		&p.TextStylePrompt,
		&p.VoiceStylePrompt,
		&p.VoiceID,
		&p.WelcomeText,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repo) Update(ctx context.Context, in *UpdateInput) (*Profile, error) {
	var p Profile

	err := r.db.QueryRowContext(ctx, `
		UPDATE assistant_profile SET
			model              = COALESCE($1, model),
			text_style_prompt  = COALESCE($2, text_style_prompt),
			voice_style_prompt = COALESCE($3, voice_style_prompt),
			voice_id           = COALESCE($4, voice_id),
			welcome_text       = COALESCE($5, welcome_text)
		WHERE id = 1
		RETURNING
			model,
			text_style_prompt,
			voice_style_prompt,
			voice_id,
			welcome_text
	`,
		in.Model,
		in.TextStylePrompt,
		in.VoiceStylePrompt,
		in.VoiceID,
		in.WelcomeText,
	).Scan(
		&p.Model,
		&p.TextStylePrompt,
		&p.VoiceStylePrompt,
		&p.VoiceID,
		&p.WelcomeText,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repo) EnsureDefault(ctx context.Context, p Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO assistant_profile (
			id, model, text_style_prompt, voice_style_prompt, voice_id, welcome_text
		) VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`,
		p.Model,
		p.TextStylePrompt,
		p.VoiceStylePrompt,
		p.VoiceID,
		p.WelcomeText,
	)
	return err
}
