package profile

import (
	"context"

	"github.com/Vovarama1992/mental_support/internal/config"
)

const defaultTextStyle = `You are a compassionate mental health support assistant.
Listen actively, validate feelings, respond with warmth and without judgement.
Never diagnose conditions or recommend medication. When it seems helpful, gently
suggest talking to a mental health professional.`

const defaultVoiceStyle = `You are a compassionate mental health support assistant
speaking out loud. Keep replies short, natural and easy to listen to. Validate
feelings, never diagnose, gently suggest professional help when appropriate.`

const defaultWelcome = "Hi, I'm here to listen. How are you feeling today?"

type service struct {
	repo Repo
	cfg  config.LLMConfig
	spc  config.SpeechConfig
}

func NewService(repo Repo, cfg config.LLMConfig, spc config.SpeechConfig) Service {
	return &service{repo: repo, cfg: cfg, spc: spc}
}

func (s *service) Get(ctx context.Context) (*Profile, error) {
	return s.repo.Get(ctx)
}

func (s *service) Update(ctx context.Context, in *UpdateInput) (*Profile, error) {
	return s.repo.Update(ctx, in)
}

func (s *service) EnsureDefault(ctx context.Context) error {
	welcome := defaultWelcome
	return s.repo.EnsureDefault(ctx, Profile{
		Model:            s.cfg.Model,
		TextStylePrompt:  defaultTextStyle,
		VoiceStylePrompt: defaultVoiceStyle,
		VoiceID:          s.spc.VoiceID,
		WelcomeText:      &welcome,
	})
}
