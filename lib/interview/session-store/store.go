package sessionstore

import (
	"context"
)

type Provider interface {
	// Get models.ErrSessionNotFound, если сессии нет или она истекла
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, sess Session) error
	Delete(ctx context.Context, id string) error
	// RunExclusive выполняет fn, если для сессии не выполняется другая операция, иначе models.ErrBusy
	RunExclusive(ctx context.Context, id string, fn func() error) error
}
