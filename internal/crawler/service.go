package crawler

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/Vovarama1992/mental_support/internal/config"
	"github.com/Vovarama1992/mental_support/internal/kb"
	"github.com/Vovarama1992/mental_support/internal/metrics"
	mapset "github.com/deckarep/golang-set"
	"github.com/patrickmn/go-cache"
)

const maxPageChars = 500

type service struct {
	search SearchClient
	kb     kb.Service
	cfg    config.CrawlerConfig

	// кэш страниц между обходами
	pages  *cache.Cache
	client *http.Client
}

func NewService(search SearchClient, kbSvc kb.Service, cfg config.CrawlerConfig) Service {
	return &service{
		search: search,
		kb:     kbSvc,
		cfg:    cfg,
		pages:  cache.New(30*time.Minute, 10*time.Minute),
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (s *service) Crawl(ctx context.Context, query string) (string, error) {
	urls, err := s.search.Search(ctx, query)
	if err != nil {
		return "", fmt.Errorf("search: %w", err)
	}

	visited := mapset.NewSet()
	var blocks []string

	for _, pageURL := range urls {
		if len(blocks) >= s.cfg.MaxResults {
			break
		}
		if visited.Contains(pageURL) {
			continue
		}
		visited.Add(pageURL)

		content := s.fetchPageContent(ctx, pageURL, 0)
		if content == "" {
			continue
		}
		blocks = append(blocks, fmt.Sprintf("Source: %s\n%s", pageURL, content))
	}

	return strings.Join(blocks, "\n\n"), nil
}

func (s *service) CrawlIntoKB(ctx context.Context, query string) (int, error) {
	urls, err := s.search.Search(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("search: %w", err)
	}

	visited := mapset.NewSet()
	saved := 0

	for _, pageURL := range urls {
		if saved >= s.cfg.MaxResults {
			break
		}
		if visited.Contains(pageURL) {
			continue
		}
		visited.Add(pageURL)

		content := s.fetchPageContent(ctx, pageURL, 0)
		if content == "" || strings.HasPrefix(content, "Error fetching content") {
			continue
		}

		if _, err := s.kb.AddDocument(ctx, content, pageURL); err != nil {
			log.Printf("[crawler] kb add fail: url=%s err=%v", pageURL, err)
			continue
		}
		saved++
	}

	log.Printf("[crawler] query=%q pages=%d", query, saved)
	return saved, nil
}

func (s *service) RefreshKB(ctx context.Context) (int, error) {
	added := 0

	for _, topic := range s.cfg.RefreshTopics {
		saved, err := s.CrawlIntoKB(ctx, topic)
		if err != nil {
			log.Printf("[crawler] refresh fail: topic=%q err=%v", topic, err)
			continue
		}
		added += saved
	}

	return added, nil
}

// fetchPageContent — текст страницы, обрезанный до maxPageChars
func (s *service) fetchPageContent(ctx context.Context, pageURL string, depth int) string {
	if depth >= s.cfg.MaxDepth {
		return ""
	}

	if cached, found := s.pages.Get(pageURL); found {
		return cached.(string)
	}

	if !s.domainAllowed(pageURL) {
		metrics.IncCrawlerFetch("blocked")
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		metrics.IncCrawlerFetch("error")
		return fmt.Sprintf("Error fetching content: %v", err)
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		metrics.IncCrawlerFetch("error")
		return fmt.Sprintf("Error fetching content: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		metrics.IncCrawlerFetch("error")
		return fmt.Sprintf("Error fetching content: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		metrics.IncCrawlerFetch("error")
		return fmt.Sprintf("Error fetching content: %v", err)
	}

	doc.Find("script, style, noscript").Remove()
	text := pageText(doc)

	metrics.IncCrawlerFetch("success")
	s.pages.Add(pageURL, text, cache.DefaultExpiration)

	return text
}

func (s *service) domainAllowed(pageURL string) bool {
	if len(s.cfg.AllowedDomains) == 0 {
		return true
	}

	u, err := url.Parse(pageURL)
	if err != nil {
		return false
	}

	host := strings.ToLower(u.Hostname())
	for _, d := range s.cfg.AllowedDomains {
		d = strings.ToLower(d)
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

func pageText(doc *goquery.Document) string {
	raw := doc.Find("body").Text()
	if raw == "" {
		raw = doc.Text()
	}

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	text := strings.Join(lines, "\n")
	runes := []rune(text)
	if len(runes) > maxPageChars {
		text = string(runes[:maxPageChars])
	}
	return text
}
