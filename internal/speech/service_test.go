package speech

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Vovarama1992/mental_support/internal/config"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSTT struct {
	text string
}

func (f *fakeSTT) Transcribe(_ context.Context, _ string) (string, error) {
	return f.text, nil
}

type fakeTTS struct {
	voiceID string
	text    string
}

func (f *fakeTTS) Synthesize(_ context.Context, voiceID, text, outPath string) error {
	f.voiceID = voiceID
	f.text = text
	return os.WriteFile(outPath, []byte("audio"), 0644)
}

func TestTranscribe(t *testing.T) {
	svc := NewService(&fakeSTT{text: "hello there"}, &fakeTTS{},
		config.SpeechConfig{MaxVoiceSeconds: 300})

	// файла нет — ffprobe упадёт, расшифровка всё равно идёт
	text, err := svc.Transcribe(context.Background(), filepath.Join(t.TempDir(), "missing.ogg"))
	require.NoError(t, err)
	assert.Equal(t, "hello there", text)
}

func TestSynthesizeDefaultVoice(t *testing.T) {
	tts := &fakeTTS{}
	svc := NewService(&fakeSTT{}, tts, config.SpeechConfig{VoiceID: "calm-voice"})

	out := filepath.Join(t.TempDir(), "reply.wav")
	err := svc.Synthesize(context.Background(), "", "take a deep breath", out)
	require.NoError(t, err)

	assert.Equal(t, "calm-voice", tts.voiceID)
	assert.Equal(t, "take a deep breath", tts.text)
	assert.FileExists(t, out)
}

func TestSynthesizeExplicitVoice(t *testing.T) {
	tts := &fakeTTS{}
	svc := NewService(&fakeSTT{}, tts, config.SpeechConfig{VoiceID: "calm-voice"})

	err := svc.Synthesize(context.Background(), "other-voice", "hi", filepath.Join(t.TempDir(), "r.wav"))
	require.NoError(t, err)
	assert.Equal(t, "other-voice", tts.voiceID)
}

func TestZonosSynthesize(t *testing.T) {
	var gotBody struct {
		Text    string `json:"text"`
		VoiceID string `json:"voice_id"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/synthesize", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte("RIFFfakewav"))
	}))
	defer srv.Close()

	t.Setenv("LOCAL_TTS_URL", srv.URL)
	client := NewZonosTTSClient()

	out := filepath.Join(t.TempDir(), "voice", "reply.wav")
	err := client.Synthesize(context.Background(), "default", "you are not alone", out)
	require.NoError(t, err)

	assert.Equal(t, "you are not alone", gotBody.Text)
	assert.Equal(t, "default", gotBody.VoiceID)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "RIFFfakewav", string(data))
}

func TestZonosSynthesizeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	t.Setenv("LOCAL_TTS_URL", srv.URL)
	client := NewZonosTTSClient()

	err := client.Synthesize(context.Background(), "default", "hi", filepath.Join(t.TempDir(), "r.wav"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not loaded")
}
