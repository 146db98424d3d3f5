package delivery

import (
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/mental_support/internal/assessment"
	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
)

type AssessmentHandler struct {
	svc assessment.Service
	log *logger.ZapLogger
}

func NewAssessmentHandler(svc assessment.Service, log *logger.ZapLogger) *AssessmentHandler {
	return &AssessmentHandler{svc: svc, log: log}
}

func (h *AssessmentHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"questions": h.svc.Questions(),
		"scale":     "0 — not at all, 3 — nearly every day",
	})
}

func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID  string `json:"user_id"`
		Answers []int  `json:"answers"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		http.Error(w, "missing user_id", http.StatusBadRequest)
		return
	}

	// Submit возвращает ошибку только на невалидных ответах
	result, err := h.svc.Submit(r.Context(), req.UserID, req.Answers)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

func (h *AssessmentHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	if userID == "" {
		http.Error(w, "missing user_id", http.StatusBadRequest)
		return
	}

	records, err := h.svc.History(r.Context(), userID, 10)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "db error", Error: err})
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(records)
}
