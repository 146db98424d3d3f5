package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/tidwall/gjson"
)

type SerpClient struct {
	apiKey string
	client *http.Client
}

func NewSerpClient() *SerpClient {
	key := os.Getenv("SERPAPI_KEY")
	if key == "" {
		panic("SERPAPI_KEY not set")
	}

	return &SerpClient{
		apiKey: key,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *SerpClient) Search(ctx context.Context, query string) ([]string, error) {
	endpoint := fmt.Sprintf(
		"https://serpapi.com/search.json?engine=google&q=%s&api_key=%s",
		url.QueryEscape(query), c.apiKey,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serpapi request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("serpapi error: %s", body)
	}

	links := gjson.GetBytes(body, "organic_results.#.link")

	var out []string
	for _, link := range links.Array() {
		if u := link.String(); u != "" {
			out = append(out, u)
		}
	}

	return out, nil
}
