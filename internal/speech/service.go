package speech

import (
	"context"
	"errors"
	"log"

	"github.com/Vovarama1992/mental_support/internal/config"
)

var ErrVoiceTooLong = errors.New("voice message too long")

// === Единый сервис (и для стт и для ттс) ===

type Service struct {
	stt STTClient
	tts TTSClient
	cfg config.SpeechConfig
}

func NewService(stt STTClient, tts TTSClient, cfg config.SpeechConfig) *Service {
	return &Service{
		stt: stt,
		tts: tts,
		cfg: cfg,
	}
}

func (s *Service) Transcribe(ctx context.Context, filePath string) (string, error) {
	dur, err := AudioDuration(ctx, filePath)
	if err != nil {
		// ffprobe недоступен — не блокируем расшифровку
		log.Printf("[speech] duration probe fail: %v", err)
	} else if s.cfg.MaxVoiceSeconds > 0 && int(dur) > s.cfg.MaxVoiceSeconds {
		return "", ErrVoiceTooLong
	}

	return s.stt.Transcribe(ctx, filePath)
}

func (s *Service) Synthesize(ctx context.Context, voiceID, text, outPath string) error {
	if voiceID == "" {
		voiceID = s.cfg.VoiceID
	}
	return s.tts.Synthesize(ctx, voiceID, text, outPath)
}

// OutputExt — расширение файла, который отдаёт текущий TTS-провайдер
func (s *Service) OutputExt() string {
	if s.cfg.TTSProvider == "elevenlabs" {
		return ".mp3"
	}
	return ".wav"
}
