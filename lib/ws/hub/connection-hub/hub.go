package connectionhub

import (
	"sync"

	wsmodels "ai-interviewer-backend/models/ws"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	AddClient(sessionID string, conn *websocket.Conn)
	// DeleteClient удаляет подключение, если оно еще текущее для сессии
	DeleteClient(sessionID string, conn *websocket.Conn)
	SendMessage(msg wsmodels.ServerMessage)
}

var Instance Provider

func Init() {
	Instance = New()
}

func New() Provider {
	return &impl{
		clients: map[string]*clientSession{},
	}
}

type impl struct {
	mu      sync.RWMutex
	clients map[string]*clientSession //map[sessionID]
}

func (i *impl) DeleteClient(sessionID string, conn *websocket.Conn) {
	i.mu.Lock()
	sess, ok := i.clients[sessionID]
	if ok && sess.conn != conn {
		// подключение уже заменено новым
		ok = false
	}
	if ok {
		delete(i.clients, sessionID)
	}
	i.mu.Unlock()
	if !ok {
		return
	}
	sess.stop()
}

func (i *impl) AddClient(sessionID string, conn *websocket.Conn) {
	i.mu.Lock()
	oldSess, ok := i.clients[sessionID]
	i.clients[sessionID] = newSession(conn)
	i.mu.Unlock()
	if ok {
		// одна сессия интервью - одно подключение, предыдущее закрываем
		oldSess.stop()
	}
}

func (i *impl) SendMessage(msg wsmodels.ServerMessage) {
	i.mu.RLock()
	sess, ok := i.clients[msg.ToSessionID]
	i.mu.RUnlock()
	if !ok {
		return
	}
	select {
	case sess.sendCh <- msg:
	case <-sess.ctx.Done():
	default:
		log.WithField("session_id", msg.ToSessionID).Warn("очередь отправки переполнена, событие пропущено")
	}
}
