package ports

import (
	"context"
	"io"
)

// Низкоуровневый клиент к S3
type S3Client interface {
	PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string) (publicURL string, err error)
}

type S3Service interface {
	ObjectKey(userID, filename string) string

	// SaveAudio кладёт аудио в бакет и возвращает публичный URL
	SaveAudio(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error)
}
