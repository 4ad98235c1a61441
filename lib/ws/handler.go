package ws

import (
	"context"
	"time"

	"ai-interviewer-backend/lib/interview"
	"ai-interviewer-backend/lib/interview/events"
	wsclient "ai-interviewer-backend/lib/ws/client"
	connectionhub "ai-interviewer-backend/lib/ws/hub/connection-hub"
	"ai-interviewer-backend/models"
	wsmodels "ai-interviewer-backend/models/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

var errUnknownAction = errors.New("неизвестное действие")

const (
	actionStart = "start"
	actionReset = "reset"
)

// InitWs интервью по websocket: {"action":"start"} - первый вопрос, бинарное сообщение - запись ответа,
// {"action":"reset"} - сброс сессии. События сессии приходят в том же соединении.
func InitWs(router fiber.Router, interviewer interview.Provider, broker events.Provider, hub connectionhub.Provider) {
	h := &sessionHandler{
		interviewer: interviewer,
		broker:      broker,
		hub:         hub,
	}
	router.Use("ws", func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		return ctx.Next()
	})
	router.Get("ws", websocket.New(h.serve))
}

type sessionHandler struct {
	interviewer interview.Provider
	broker      events.Provider
	hub         connectionhub.Provider
}

// @Summary Интервью по websocket
// @Tags Interview
// @Description Текстовые сообщения wsmodels.ClientMessage, бинарные - запись ответа кандидата. Токен сессии в параметре token
// @Param   token		query		string		true		"Session token"
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 401
// @Failure 426
// @router /api/v1/interview/ws [get]
func (h *sessionHandler) serve(c *websocket.Conn) {
	sessionID, _ := c.Locals("session_id").(string)
	h.hub.AddClient(sessionID, c)
	defer h.hub.DeleteClient(sessionID, c)
	if h.broker != nil {
		h.broker.Replay(sessionID)
	}
	client := wsclient.NewClient(sessionID, c, h, func(err error) {
		h.reportError(sessionID, err)
	})
	client.Dispatch(context.Background())
}

func (h *sessionHandler) HandleAction(ctx context.Context, sessionID string, msg wsmodels.ClientMessage) (err error) {
	switch msg.Action {
	case actionStart:
		_, err = h.interviewer.Advance(ctx, sessionID, nil)
	case actionReset:
		_, err = h.interviewer.Reset(ctx, sessionID)
	default:
		err = errors.Wrapf(errUnknownAction, "%q", msg.Action)
	}
	return err
}

func (h *sessionHandler) HandleAudio(ctx context.Context, sessionID string, audio []byte) error {
	_, err := h.interviewer.Advance(ctx, sessionID, audio)
	return err
}

// reportError ошибки, о которых контроллер интервью не сообщает событием сам
func (h *sessionHandler) reportError(sessionID string, err error) {
	if !errors.Is(err, models.ErrBusy) && !errors.Is(err, models.ErrSessionNotFound) && models.ErrorKind(err) != "internal" {
		return
	}
	h.hub.SendMessage(wsmodels.ServerMessage{
		ToSessionID: sessionID,
		Time:        time.Now().Format("02.01.2006 15:04:05"),
		Code:        string(models.EventError),
		Msg:         err.Error(),
		ErrorKind:   models.ErrorKind(err),
	})
}
