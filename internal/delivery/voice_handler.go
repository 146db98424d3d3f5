package delivery

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/mental_support/internal/orchestrator"
	"github.com/Vovarama1992/mental_support/internal/ports"
	"github.com/Vovarama1992/mental_support/internal/profile"
	"github.com/Vovarama1992/mental_support/internal/speech"
	"github.com/Vovarama1992/mental_support/internal/textrules"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

type VoiceHandler struct {
	orchestrator  orchestrator.Service
	recordService ports.RecordService
	speechService *speech.Service
	textRules     textrules.Service
	profiles      profile.Service
	s3            ports.S3Service
	audioDir      string
	log           *logger.ZapLogger
}

func NewVoiceHandler(
	orch orchestrator.Service,
	recordService ports.RecordService,
	speechService *speech.Service,
	textRules textrules.Service,
	profiles profile.Service,
	s3 ports.S3Service,
	audioDir string,
	log *logger.ZapLogger,
) *VoiceHandler {
	return &VoiceHandler{
		orchestrator:  orch,
		recordService: recordService,
		speechService: speechService,
		textRules:     textRules,
		profiles:      profiles,
		s3:            s3,
		audioDir:      audioDir,
		log:           log,
	}
}

type voiceResponse struct {
	orchestrator.ProcessResult
	Transcript    string `json:"transcript"`
	AudioURL      string `json:"audio_url,omitempty"`       // исходное сообщение
	ReplyAudioURL string `json:"reply_audio_url,omitempty"` // синтезированный ответ
}

func (h *VoiceHandler) Voice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "invalid multipart", Error: err})
		http.Error(w, "invalid multipart: "+err.Error(), http.StatusBadRequest)
		return
	}

	userID := r.FormValue("user_id")
	if userID == "" {
		http.Error(w, "missing user_id", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "missing file", Error: err})
		http.Error(w, "missing file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".ogg"
	}

	// Whisper и ffprobe работают с файлом на диске
	inPath := filepath.Join(h.audioDir, "in_"+uuid.NewString()+ext)
	out, err := os.Create(inPath)
	if err != nil {
		http.Error(w, "failed to store upload: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		http.Error(w, "failed to store upload: "+err.Error(), http.StatusInternalServerError)
		return
	}
	out.Close()
	defer os.Remove(inPath)

	text, err := h.speechService.Transcribe(r.Context(), inPath)
	if err != nil {
		if errors.Is(err, speech.ErrVoiceTooLong) {
			http.Error(w, "voice message too long", http.StatusBadRequest)
			return
		}
		h.log.Log(logger.LogEntry{Level: "error", Message: "transcribe failed", Error: err})
		http.Error(w, "failed to transcribe: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// архив исходника в S3 — не блокируем ответ при сбое
	audioURL := h.archiveAudio(r, inPath, userID, header.Filename, contentTypeFor(header.Header.Get("Content-Type"), ext))

	result, err := h.orchestrator.ProcessMessage(r.Context(), userID, "voice", text)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "process voice failed", Error: err})
		http.Error(w, "failed to process message: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if _, err := h.recordService.AddVoice(r.Context(), userID, "user", text, audioURL); err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "save user record failed", Error: err})
	}

	replyURL := h.synthesizeReply(r, userID, result.Response)

	if _, err := h.recordService.AddVoice(r.Context(), userID, "assistant", result.Response, replyURL); err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "save assistant record failed", Error: err})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(voiceResponse{
		ProcessResult: result,
		Transcript:    text,
		AudioURL:      audioURL,
		ReplyAudioURL: replyURL,
	})
}

// synthesizeReply — правила произношения + TTS + загрузка в S3.
// При любом сбое отдаём текстовый ответ без озвучки.
func (h *VoiceHandler) synthesizeReply(r *http.Request, userID, reply string) string {
	prepared, err := h.textRules.Process(r.Context(), reply)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "text rules failed", Error: err})
		prepared = reply
	}

	voiceID := ""
	if prof, err := h.profiles.Get(r.Context()); err == nil {
		voiceID = prof.VoiceID
	}

	ext := h.speechService.OutputExt()
	outPath := filepath.Join(h.audioDir, "reply_"+uuid.NewString()+ext)

	if err := h.speechService.Synthesize(r.Context(), voiceID, prepared, outPath); err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "synthesize failed", Error: err})
		return ""
	}
	defer os.Remove(outPath)

	return h.archiveAudio(r, outPath, userID, filepath.Base(outPath), mime.TypeByExtension(ext))
}

func (h *VoiceHandler) archiveAudio(r *http.Request, path, userID, filename, contentType string) string {
	f, err := os.Open(path)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "open audio for archive failed", Error: err})
		return ""
	}
	defer f.Close()

	url, err := h.s3.SaveAudio(r.Context(), userID, f, filename, contentType)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "s3 archive failed", Error: err})
		return ""
	}
	return url
}

func contentTypeFor(fromHeader, ext string) string {
	if fromHeader != "" {
		return fromHeader
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "audio/ogg"
}
