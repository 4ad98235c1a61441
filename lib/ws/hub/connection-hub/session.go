package connectionhub

import (
	"context"
	"time"

	wsmodels "ai-interviewer-backend/models/ws"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	sendBuffer   = 8
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
)

// clientSession подключение клиента с очередью исходящих событий.
// В соединение пишет только горутина writeLoop.
type clientSession struct {
	conn   *websocket.Conn
	sendCh chan wsmodels.ServerMessage
	ctx    context.Context
	stop   context.CancelFunc
}

func newSession(conn *websocket.Conn) *clientSession {
	ctx, cancel := context.WithCancel(context.Background())
	sess := &clientSession{
		conn:   conn,
		sendCh: make(chan wsmodels.ServerMessage, sendBuffer),
		ctx:    ctx,
		stop:   cancel,
	}
	go sess.writeLoop()
	return sess
}

func (s *clientSession) connected() bool {
	return s.conn != nil && s.conn.Conn != nil
}

func (s *clientSession) writeLoop() {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()
	for {
		select {
		case <-s.ctx.Done():
			s.close()
			return
		case msg := <-s.sendCh:
			if err := s.write(msg); err != nil {
				log.WithError(err).WithField("session_id", msg.ToSessionID).Error("ошибка отправки сообщения")
			}
		case <-ping.C:
			if !s.connected() {
				continue
			}
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				log.WithError(err).Debug("ping не отправлен")
			}
		}
	}
}

func (s *clientSession) write(msg wsmodels.ServerMessage) error {
	if !s.connected() {
		return nil
	}
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	if err := s.conn.WriteJSON(msg); err != nil {
		return err
	}
	log.WithField("session_id", msg.ToSessionID).Debugf("отправлено событие %s", msg.Code)
	return nil
}

func (s *clientSession) close() {
	if !s.connected() {
		return
	}
	err := s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	if err != nil {
		log.WithError(err).Debug("соединение уже закрыто")
	}
}
