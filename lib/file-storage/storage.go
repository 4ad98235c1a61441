package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"ai-interviewer-backend/models"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

type impl struct {
	s3client   *minio.Client
	bucketName string
}

func NewInstance(s3client *minio.Client, bucketName string) {
	Instance = &impl{
		s3client:   s3client,
		bucketName: bucketName,
	}
}

func (i impl) UploadResume(ctx context.Context, email string, file models.File) (string, error) {
	key := fmt.Sprintf("resumes/%s/%d-%s", email, time.Now().Unix(), sanitizeFileName(file.FileName))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := i.put(ctx, key, file.Body, contentType); err != nil {
		return "", errors.Wrap(err, "ошибка загрузки резюме в S3")
	}
	return key, nil
}

func (i impl) UploadAnswer(ctx context.Context, sessionID string, questionIndex int, audio []byte) (string, error) {
	key := AnswerKey(sessionID, questionIndex)
	if err := i.put(ctx, key, audio, "audio/webm"); err != nil {
		return "", errors.Wrap(err, "ошибка загрузки ответа в S3")
	}
	return key, nil
}

func (i impl) GetFile(ctx context.Context, key string) ([]byte, error) {
	obj, err := i.s3client.GetObject(ctx, i.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения файла из S3")
	}
	defer obj.Close()
	body, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, errors.Wrapf(models.ErrNotFound, "файл %s не найден", key)
		}
		return nil, errors.Wrap(err, "ошибка чтения файла из S3")
	}
	return body, nil
}

// AnswerKey ключ записи ответа кандидата на вопрос questionIndex
func AnswerKey(sessionID string, questionIndex int) string {
	return fmt.Sprintf("answers/%s/%03d.webm", sessionID, questionIndex)
}

func (i impl) put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := i.s3client.PutObject(ctx, i.bucketName, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{ContentType: contentType})
	return err
}

func sanitizeFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "resume"
	}
	return strings.ReplaceAll(name, " ", "_")
}
