package delivery

import (
	"bytes"
	"io"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/mental_support/internal/orchestrator"
	"github.com/Vovarama1992/mental_support/internal/ports"
	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
)

type ChatHandler struct {
	orchestrator  orchestrator.Service
	recordService ports.RecordService
	log           *logger.ZapLogger
}

func NewChatHandler(orch orchestrator.Service, recordService ports.RecordService, log *logger.ZapLogger) *ChatHandler {
	return &ChatHandler{
		orchestrator:  orch,
		recordService: recordService,
		log:           log,
	}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body: "+err.Error(), http.StatusBadRequest)
		return
	}

	// чистим сырые переводы строк, если они ломают JSON
	clean := bytes.ReplaceAll(body, []byte("\r"), []byte(" "))
	clean = bytes.ReplaceAll(clean, []byte("\n"), []byte(" "))
	clean = bytes.TrimSpace(clean)

	var req struct {
		UserID  string `json:"user_id"`
		Message string `json:"message"`
	}

	if err := json.Unmarshal(clean, &req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.UserID == "" || req.Message == "" {
		http.Error(w, "missing user_id or message", http.StatusBadRequest)
		return
	}

	result, err := h.orchestrator.ProcessMessage(r.Context(), req.UserID, "text", req.Message)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "process message failed", Error: err})
		http.Error(w, "failed to process message: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// историю пишем после ответа: GetReply сам добавляет текущее сообщение
	if _, err := h.recordService.AddText(r.Context(), req.UserID, "user", req.Message); err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "save user record failed", Error: err})
	}
	if _, err := h.recordService.AddText(r.Context(), req.UserID, "assistant", result.Response); err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "save assistant record failed", Error: err})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

func (h *ChatHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	if userID == "" {
		http.Error(w, "missing user_id", http.StatusBadRequest)
		return
	}

	trend, err := h.orchestrator.GetEmotionalTrends(r.Context(), userID)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "db error", Error: err})
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(trend)
}

func (h *ChatHandler) GetSafetySummary(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	if userID == "" {
		http.Error(w, "missing user_id", http.StatusBadRequest)
		return
	}

	summary, err := h.orchestrator.GetSafetySummary(r.Context(), userID)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "db error", Error: err})
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(summary)
}
