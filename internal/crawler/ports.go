package crawler

import "context"

type SearchClient interface {
	// Search — поисковая выдача: список URL по запросу
	Search(ctx context.Context, query string) ([]string, error)
}

type Service interface {
	// Crawl — выдача + контент страниц одним текстом (для промпта)
	Crawl(ctx context.Context, query string) (string, error)
	// CrawlIntoKB — обходит выдачу по запросу, складывает страницы в базу знаний
	CrawlIntoKB(ctx context.Context, query string) (int, error)
	// RefreshKB — то же для всех настроенных тем
	RefreshKB(ctx context.Context) (int, error)
}
