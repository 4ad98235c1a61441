package wsclient

import (
	"context"
	"encoding/json"

	wsmodels "ai-interviewer-backend/models/ws"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

// Handler обработка сообщений клиента: текстовые - команды, бинарные - запись ответа
type Handler interface {
	HandleAction(ctx context.Context, sessionID string, msg wsmodels.ClientMessage) error
	HandleAudio(ctx context.Context, sessionID string, audio []byte) error
}

func NewClient(sessionID string, c *websocket.Conn, handler Handler, onError func(err error)) *WsClient {
	return &WsClient{
		conn:      c,
		sessionID: sessionID,
		handler:   handler,
		onError:   onError,
	}
}

type WsClient struct {
	conn      *websocket.Conn
	sessionID string
	handler   Handler
	onError   func(err error)
}

var closeCodes []int

func init() {
	for i := websocket.CloseNormalClosure; i <= websocket.CloseTLSHandshake; i++ {
		closeCodes = append(closeCodes, i)
	}
}

// Dispatch читает сообщения до закрытия соединения. Сообщения обрабатываются по одному.
func (c *WsClient) Dispatch(ctx context.Context) {
	logger := log.WithField("session_id", c.sessionID)
	for {
		if c.conn == nil {
			return
		}
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, closeCodes...) {
				logger.WithError(err).Error("ошибка получения сообщения")
			}
			break
		}
		switch messageType {
		case websocket.TextMessage:
			msg := wsmodels.ClientMessage{}
			if err = json.Unmarshal(data, &msg); err != nil {
				logger.WithError(err).Warn("некорректное сообщение websocket")
				c.reportError(err)
				continue
			}
			logger.WithField("action", msg.Action).Debug("ws-msg")
			err = c.handler.HandleAction(ctx, c.sessionID, msg)
		case websocket.BinaryMessage:
			logger.WithField("audio_size", len(data)).Debug("ws-audio")
			err = c.handler.HandleAudio(ctx, c.sessionID, data)
		default:
			continue
		}
		if err != nil {
			c.reportError(err)
		}
	}
}

func (c *WsClient) reportError(err error) {
	if c.onError != nil {
		c.onError(err)
	}
}
