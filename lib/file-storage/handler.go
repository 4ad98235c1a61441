package filestorage

import (
	"context"

	"ai-interviewer-backend/models"
)

// Provider хранение исходных файлов резюме и аудио ответов
type Provider interface {
	UploadResume(ctx context.Context, email string, file models.File) (key string, err error)
	UploadAnswer(ctx context.Context, sessionID string, questionIndex int, audio []byte) (key string, err error)
	// GetFile содержимое файла, models.ErrNotFound если файла нет
	GetFile(ctx context.Context, key string) ([]byte, error)
}

var Instance Provider
