package profile

import (
	"net/http"

	json "github.com/goccy/go-json"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// GET /profile
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context())
	if err != nil {
		http.Error(w, "profile not found", 404)
		return
	}
	_ = json.NewEncoder(w).Encode(p)
}

// PATCH /profile
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Model            *string `json:"model"`
		TextStylePrompt  *string `json:"text_style_prompt"`
		VoiceStylePrompt *string `json:"voice_style_prompt"`
		VoiceID          *string `json:"voice_id"`
		WelcomeText      *string `json:"welcome_text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", 400)
		return
	}

	in := &UpdateInput{
		Model:            body.Model,
		TextStylePrompt:  body.TextStylePrompt,
		VoiceStylePrompt: body.VoiceStylePrompt,
		VoiceID:          body.VoiceID,
		WelcomeText:      body.WelcomeText,
	}

	out, err := h.svc.Update(r.Context(), in)
	if err != nil {
		http.Error(w, "failed to update profile", 500)
		return
	}

	_ = json.NewEncoder(w).Encode(out)
}
