package delivery

import (
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/mental_support/internal/ports"
	"github.com/Vovarama1992/mental_support/internal/user"
	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
)

type HistoryHandler struct {
	recordService ports.RecordService
	userService   user.Service
	log           *logger.ZapLogger
}

func NewHistoryHandler(recordService ports.RecordService, userService user.Service, log *logger.ZapLogger) *HistoryHandler {
	return &HistoryHandler{
		recordService: recordService,
		userService:   userService,
		log:           log,
	}
}

func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	if userID == "" {
		http.Error(w, "missing user_id", http.StatusBadRequest)
		return
	}

	history, err := h.recordService.GetHistory(r.Context(), userID)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "db error", Error: err})
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(history)
}

// DeleteHistory стирает переписку вместе с анализами и опросниками
func (h *HistoryHandler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	if userID == "" {
		http.Error(w, "missing user_id", http.StatusBadRequest)
		return
	}

	if err := h.userService.ResetUser(r.Context(), userID); err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "reset user failed", Error: err})
		http.Error(w, "failed to reset user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *HistoryHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.recordService.ListUsers(r.Context())
	if err != nil {
		http.Error(w, "failed to list users: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(users); err != nil {
		http.Error(w, "failed to encode response: "+err.Error(), http.StatusInternalServerError)
	}
}
