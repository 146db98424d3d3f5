package profile

import "context"

type Profile struct {
	Model            string  `json:"model"`
	TextStylePrompt  string  `json:"text_style_prompt"`
	VoiceStylePrompt string  `json:"voice_style_prompt"`
	VoiceID          string  `json:"voice_id"`
	WelcomeText      *string `json:"welcome_text"`
}

type UpdateInput struct {
	Model            *string
	TextStylePrompt  *string
	VoiceStylePrompt *string
	VoiceID          *string
	WelcomeText      *string
}

type Repo interface {
	Get(ctx context.Context) (*Profile, error)
	Update(ctx context.Context, in *UpdateInput) (*Profile, error)
	// EnsureDefault — создаёт строку профиля, если её ещё нет
	EnsureDefault(ctx context.Context, p Profile) error
}

type Service interface {
	Get(ctx context.Context) (*Profile, error)
	Update(ctx context.Context, in *UpdateInput) (*Profile, error)
	EnsureDefault(ctx context.Context) error
}
