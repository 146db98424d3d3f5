package delivery

import (
	"net/http"

	"github.com/Vovarama1992/mental_support/internal/manifest"
	json "github.com/goccy/go-json"
)

// ManifestHandler отдаёт справочные данные: пины моделей и кризисные контакты
type ManifestHandler struct {
	man       *manifest.Manifest
	resources string
}

func NewManifestHandler(man *manifest.Manifest, resources string) *ManifestHandler {
	return &ManifestHandler{man: man, resources: resources}
}

// GET /requirements — манифест моделей, распарсенный на старте
func (h *ManifestHandler) GetRequirements(w http.ResponseWriter, r *http.Request) {
	if h.man == nil {
		http.Error(w, "manifest not loaded", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.man)
}

// GET /resources — кризисные контакты (всегда доступны без истории)
func (h *ManifestHandler) GetResources(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"resources": h.resources})
}
