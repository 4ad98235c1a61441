package tts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"ai-interviewer-backend/lib/metrics"
	"ai-interviewer-backend/models"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Engine синтез речи в wav
type Engine interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
	Name() string
}

type Provider interface {
	// Synthesize возвращает wav с озвученным текстом
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

var Instance Provider

func NewHandler(engine Engine, cacheTTL time.Duration) {
	Instance = New(engine, cacheTTL)
}

func New(engine Engine, cacheTTL time.Duration) Provider {
	return &impl{
		engine: engine,
		cache:  cache.New(cacheTTL, cacheTTL*2),
	}
}

type impl struct {
	engine Engine
	cache  *cache.Cache
}

func (i *impl) Synthesize(ctx context.Context, text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.Wrap(models.ErrSynthesis, "нет текста для озвучивания")
	}
	key := cacheKey(i.engine.Name(), text)
	if value, ok := i.cache.Get(key); ok {
		metrics.ObserveSynthesis(true, nil)
		return value.([]byte), nil
	}
	audio, err := i.engine.Synthesize(ctx, text)
	metrics.ObserveSynthesis(false, err)
	if err != nil {
		log.WithError(err).WithField("tts", i.engine.Name()).Error("ошибка синтеза речи")
		return nil, errors.Wrapf(models.ErrSynthesis, "%v", err)
	}
	i.cache.Set(key, audio, cache.DefaultExpiration)
	return audio, nil
}

func cacheKey(engine, text string) string {
	sum := sha256.Sum256([]byte(engine + "\x00" + text))
	return hex.EncodeToString(sum[:])
}
