package transcriber

import (
	"context"
	"strings"
	"time"

	"ai-interviewer-backend/lib/metrics"
	"ai-interviewer-backend/models"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Engine распознавание речи из wav 16 кГц моно
type Engine interface {
	TranscribeWav(ctx context.Context, wav []byte) (string, error)
	Name() string
}

// Normalizer конвертация записи ответа в wav
type Normalizer interface {
	ToWav(ctx context.Context, audio []byte) ([]byte, error)
}

type Provider interface {
	// Transcribe распознает записанный ответ кандидата (webm/ogg/wav)
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

var Instance Provider

func NewHandler(engine Engine, normalizer Normalizer) {
	Instance = New(engine, normalizer)
}

func New(engine Engine, normalizer Normalizer) Provider {
	return impl{
		engine:     engine,
		normalizer: normalizer,
	}
}

type impl struct {
	engine     Engine
	normalizer Normalizer
}

func (i impl) Transcribe(ctx context.Context, audio []byte) (text string, err error) {
	logger := log.
		WithField("stt", i.engine.Name()).
		WithField("audio_size", len(audio))
	if len(audio) == 0 {
		return "", errors.Wrap(models.ErrTranscription, "пустая запись ответа")
	}
	now := time.Now()
	defer func() {
		metrics.ObserveTranscription(i.engine.Name(), time.Since(now), err)
	}()

	wav, err := i.normalizer.ToWav(ctx, audio)
	if err != nil {
		logger.WithError(err).Error("ошибка конвертации записи ответа")
		return "", errors.Wrapf(models.ErrTranscription, "%v", err)
	}
	text, err = i.engine.TranscribeWav(ctx, wav)
	if err != nil {
		logger.WithError(err).Error("ошибка распознавания речи")
		return "", errors.Wrapf(models.ErrTranscription, "%v", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		err = errors.Wrap(models.ErrTranscription, "речь не распознана")
		return "", err
	}
	logger.
		WithField("duration_sec", time.Since(now).Seconds()).
		Info("ответ кандидата распознан")
	return text, nil
}
