package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// ZonosTTSClient — клиент локального TTS-сервера (Zonos, поднимается
// отдельно по requirements.txt). Синтез тяжёлый, таймаут большой.
type ZonosTTSClient struct {
	baseURL string
	httpCli *http.Client
}

func NewZonosTTSClient() *ZonosTTSClient {
	base := os.Getenv("LOCAL_TTS_URL")
	if base == "" {
		base = "http://localhost:8001"
	}

	return &ZonosTTSClient{
		baseURL: strings.TrimRight(base, "/"),
		httpCli: &http.Client{Timeout: 120 * time.Second},
	}
}

func (t *ZonosTTSClient) Synthesize(ctx context.Context, voiceID, text, outPath string) error {
	payload, err := json.Marshal(struct {
		Text    string `json:"text"`
		VoiceID string `json:"voice_id"`
	}{Text: text, VoiceID: voiceID})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", t.baseURL+"/synthesize", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/wav")

	resp, err := t.httpCli.Do(req)
	if err != nil {
		return fmt.Errorf("local tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("local tts error: %s", string(b))
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}
