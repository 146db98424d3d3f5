package textrules

import (
	"net/http"

	json "github.com/goccy/go-json"
)

type Handler struct {
	repo Repo
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo}
}

// GET /tts-rules
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	letters, err := h.repo.ListLetterRules(r.Context())
	if err != nil {
		http.Error(w, "failed to list letter rules", 500)
		return
	}
	words, err := h.repo.ListWordRules(r.Context())
	if err != nil {
		http.Error(w, "failed to list word rules", 500)
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"letters": letters,
		"words":   words,
	})
}

// POST /tts-rules
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Kind string `json:"kind"` // "letter" | "word"
		From string `json:"from"`
		To   string `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", 400)
		return
	}
	if body.From == "" || body.To == "" {
		http.Error(w, "from and to required", 400)
		return
	}

	var err error
	switch body.Kind {
	case "letter":
		err = h.repo.AddLetterRule(r.Context(), body.From, body.To)
	case "word":
		err = h.repo.AddWordRule(r.Context(), body.From, body.To)
	default:
		http.Error(w, "kind must be letter or word", 400)
		return
	}
	if err != nil {
		http.Error(w, "failed to add rule", 500)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DELETE /tts-rules
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Kind string `json:"kind"`
		From string `json:"from"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", 400)
		return
	}

	var err error
	switch body.Kind {
	case "letter":
		err = h.repo.DeleteLetterRule(r.Context(), body.From)
	case "word":
		err = h.repo.DeleteWordRule(r.Context(), body.From)
	default:
		http.Error(w, "kind must be letter or word", 400)
		return
	}
	if err != nil {
		http.Error(w, "failed to delete rule", 500)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
