package delivery

import (
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/mental_support/internal/crawler"
	"github.com/Vovarama1992/mental_support/internal/kb"
	json "github.com/goccy/go-json"
)

type KBHandler struct {
	kb      kb.Service
	crawler crawler.Service
	log     *logger.ZapLogger
}

func NewKBHandler(kbSvc kb.Service, crawlerSvc crawler.Service, log *logger.ZapLogger) *KBHandler {
	return &KBHandler{
		kb:      kbSvc,
		crawler: crawlerSvc,
		log:     log,
	}
}

// POST /kb/documents — ручное пополнение базы знаний
func (h *KBHandler) AddDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
		Source  string `json:"source"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Content == "" {
		http.Error(w, "missing content", http.StatusBadRequest)
		return
	}

	id, err := h.kb.AddDocument(r.Context(), req.Content, req.Source)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "kb add failed", Error: err})
		http.Error(w, "failed to add document: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"id": id})
}

// POST /kb/search
func (h *KBHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
		TopK  int    `json:"top_k"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		http.Error(w, "missing query", http.StatusBadRequest)
		return
	}

	docs, err := h.kb.Search(r.Context(), req.Query, req.TopK)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "kb search failed", Error: err})
		http.Error(w, "search failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"documents": docs})
}

// POST /kb/crawl — обход выдачи по запросу с записью страниц в базу
func (h *KBHandler) Crawl(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		http.Error(w, "missing query", http.StatusBadRequest)
		return
	}

	added, err := h.crawler.CrawlIntoKB(r.Context(), req.Query)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "crawl failed", Error: err})
		http.Error(w, "crawl failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int{"added": added})
}
