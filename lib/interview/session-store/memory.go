package sessionstore

import (
	"context"
	"time"

	"ai-interviewer-backend/lib/utils/lock"
	"ai-interviewer-backend/models"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
)

func NewMemory(ttl time.Duration) Provider {
	return &memoryImpl{
		cache: cache.New(ttl, ttl/2),
		locks: lock.NewKeyLock(),
	}
}

type memoryImpl struct {
	cache *cache.Cache
	locks *lock.KeyLock
}

func (i *memoryImpl) Get(ctx context.Context, id string) (*Session, error) {
	value, ok := i.cache.Get(id)
	if !ok {
		return nil, errors.Wrapf(models.ErrSessionNotFound, "id: %s", id)
	}
	sess := value.(Session)
	return &sess, nil
}

func (i *memoryImpl) Save(ctx context.Context, sess Session) error {
	i.cache.SetDefault(sess.ID, sess)
	return nil
}

func (i *memoryImpl) Delete(ctx context.Context, id string) error {
	i.cache.Delete(id)
	return nil
}

func (i *memoryImpl) RunExclusive(ctx context.Context, id string, fn func() error) error {
	ok, err := i.locks.TryRun(id, fn)
	if !ok {
		return models.ErrBusy
	}
	return err
}
