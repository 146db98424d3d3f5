package domain

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/Vovarama1992/mental_support/internal/ports"
	"github.com/google/uuid"
)

type s3Service struct {
	client ports.S3Client
}

func NewS3Service(client ports.S3Client) ports.S3Service {
	return &s3Service{client: client}
}

// ObjectKey — путь в бакете
func (s *s3Service) ObjectKey(userID string, filename string) string {
	date := time.Now().Format("2006-01-02")
	clean := filepath.Base(filename)
	return fmt.Sprintf("%s/%s/%s_%s", userID, date, uuid.NewString(), clean)
}

// SaveAudio — принимает io.Reader (а не multipart.File)
func (s *s3Service) SaveAudio(
	ctx context.Context,
	userID string,
	file io.Reader,
	filename,
	contentType string,
) (string, error) {

	if userID == "" {
		return "", fmt.Errorf("userID required")
	}

	key := s.ObjectKey(userID, filename)

	// size = -1 → S3 клиент сам определит
	return s.client.PutObject(ctx, key, file, -1, contentType)
}
