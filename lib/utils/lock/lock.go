package lock

import (
	"sync"
)

// KeyLock неблокирующая блокировка по ключу
type KeyLock struct {
	keys sync.Map
}

func NewKeyLock() *KeyLock {
	return &KeyLock{}
}

// TryRun выполняет safeCode, если ключ свободен. Если ключ занят, сразу возвращает success=false.
func (l *KeyLock) TryRun(key string, safeCode func() error) (success bool, err error) {
	if _, loaded := l.keys.LoadOrStore(key, struct{}{}); loaded {
		return false, nil
	}
	defer l.keys.Delete(key)
	return true, safeCode()
}
