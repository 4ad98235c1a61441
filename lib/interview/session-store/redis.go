package sessionstore

import (
	"context"
	"encoding/json"
	"time"

	"ai-interviewer-backend/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "interview:session:"
	lockKeyPrefix    = "interview:lock:"
)

// снимает блокировку, только если она еще принадлежит этому владельцу
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// NewRedis хранилище сессий для нескольких экземпляров сервиса.
// lockTTL ограничивает время жизни блокировки, если экземпляр упал во время операции.
func NewRedis(client redis.UniversalClient, ttl, lockTTL time.Duration) Provider {
	return &redisImpl{
		client:  client,
		ttl:     ttl,
		lockTTL: lockTTL,
	}
}

type redisImpl struct {
	client  redis.UniversalClient
	ttl     time.Duration
	lockTTL time.Duration
}

func (i *redisImpl) Get(ctx context.Context, id string) (*Session, error) {
	data, err := i.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errors.Wrapf(models.ErrSessionNotFound, "id: %s", id)
		}
		return nil, errors.Wrap(err, "ошибка чтения сессии из redis")
	}
	sess := Session{}
	if err = json.Unmarshal(data, &sess); err != nil {
		return nil, errors.Wrap(err, "ошибка разбора сессии из redis")
	}
	return &sess, nil
}

func (i *redisImpl) Save(ctx context.Context, sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "ошибка сериализации сессии")
	}
	if err = i.client.Set(ctx, sessionKeyPrefix+sess.ID, data, i.ttl).Err(); err != nil {
		return errors.Wrap(err, "ошибка записи сессии в redis")
	}
	return nil
}

func (i *redisImpl) Delete(ctx context.Context, id string) error {
	if err := i.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return errors.Wrap(err, "ошибка удаления сессии из redis")
	}
	return nil
}

func (i *redisImpl) RunExclusive(ctx context.Context, id string, fn func() error) error {
	key := lockKeyPrefix + id
	owner := uuid.NewString()
	ok, err := i.client.SetNX(ctx, key, owner, i.lockTTL).Result()
	if err != nil {
		return errors.Wrap(err, "ошибка блокировки сессии в redis")
	}
	if !ok {
		return models.ErrBusy
	}
	defer func() {
		// контекст запроса может быть уже отменен, блокировку снимаем в любом случае
		unlockCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		unlockScript.Run(unlockCtx, i.client, []string{key}, owner)
	}()
	return fn()
}
