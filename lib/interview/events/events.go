package events

import (
	"sync"
	"time"

	connectionhub "ai-interviewer-backend/lib/ws/hub/connection-hub"
	wsmodels "ai-interviewer-backend/models/ws"

	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
)

// Provider рассылка событий сессии интервью по websocket и SSE
type Provider interface {
	Publish(msg wsmodels.ServerMessage)
	// Subscribe подписка на события сессии, последнее событие приходит сразу
	Subscribe(sessionID string) (ch <-chan wsmodels.ServerMessage, unsubscribe func())
	// Replay повторно отправляет последнее событие в websocket сессии
	Replay(sessionID string)
	SubscriberCount(sessionID string) int
}

var Instance Provider

func NewHandler(hub connectionhub.Provider, ttl time.Duration) {
	Instance = New(hub, ttl)
}

func New(hub connectionhub.Provider, ttl time.Duration) Provider {
	return &impl{
		hub:         hub,
		last:        cache.New(ttl, ttl/2),
		subscribers: map[string]map[int]chan wsmodels.ServerMessage{},
	}
}

const subscriberBuffer = 8

type impl struct {
	hub         connectionhub.Provider
	last        *cache.Cache
	mu          sync.Mutex
	nextID      int
	subscribers map[string]map[int]chan wsmodels.ServerMessage
}

func (i *impl) Publish(msg wsmodels.ServerMessage) {
	if msg.Time == "" {
		msg.Time = time.Now().Format("02.01.2006 15:04:05")
	}
	i.last.SetDefault(msg.ToSessionID, msg)
	if i.hub != nil {
		i.hub.SendMessage(msg)
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	for _, ch := range i.subscribers[msg.ToSessionID] {
		select {
		case ch <- msg:
		default:
			log.WithField("session_id", msg.ToSessionID).Warn("подписчик не успевает получать события, событие пропущено")
		}
	}
}

func (i *impl) Subscribe(sessionID string) (<-chan wsmodels.ServerMessage, func()) {
	ch := make(chan wsmodels.ServerMessage, subscriberBuffer)
	if msg, ok := i.lastMessage(sessionID); ok {
		ch <- msg
	}
	i.mu.Lock()
	i.nextID++
	id := i.nextID
	if _, ok := i.subscribers[sessionID]; !ok {
		i.subscribers[sessionID] = map[int]chan wsmodels.ServerMessage{}
	}
	i.subscribers[sessionID][id] = ch
	i.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			i.mu.Lock()
			defer i.mu.Unlock()
			delete(i.subscribers[sessionID], id)
			if len(i.subscribers[sessionID]) == 0 {
				delete(i.subscribers, sessionID)
			}
		})
	}
	return ch, unsubscribe
}

func (i *impl) Replay(sessionID string) {
	if i.hub == nil {
		return
	}
	if msg, ok := i.lastMessage(sessionID); ok {
		i.hub.SendMessage(msg)
	}
}

func (i *impl) SubscriberCount(sessionID string) int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.subscribers[sessionID])
}

func (i *impl) lastMessage(sessionID string) (wsmodels.ServerMessage, bool) {
	value, ok := i.last.Get(sessionID)
	if !ok {
		return wsmodels.ServerMessage{}, false
	}
	return value.(wsmodels.ServerMessage), true
}
