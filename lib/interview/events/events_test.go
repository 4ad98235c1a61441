package events

import (
	"testing"
	"time"

	wsmodels "ai-interviewer-backend/models/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/stretchr/testify/require"
)

type fakeHub struct {
	sent []wsmodels.ServerMessage
}

func (f *fakeHub) AddClient(sessionID string, conn *websocket.Conn)    {}
func (f *fakeHub) DeleteClient(sessionID string, conn *websocket.Conn) {}
func (f *fakeHub) SendMessage(msg wsmodels.ServerMessage) {
	f.sent = append(f.sent, msg)
}

func TestPublish(t *testing.T) {
	t.Run(`subscriber receives session events only`, func(t *testing.T) {
		hub := &fakeHub{}
		broker := New(hub, time.Minute)
		ch, unsubscribe := broker.Subscribe("s1")
		defer unsubscribe()

		broker.Publish(wsmodels.ServerMessage{ToSessionID: "s2", Code: "Question"})
		broker.Publish(wsmodels.ServerMessage{ToSessionID: "s1", Code: "Question", Question: "Why Go?", QuestionIndex: 1})

		msg := <-ch
		require.Equal(t, "Why Go?", msg.Question)
		require.NotEmpty(t, msg.Time)
		require.Len(t, ch, 0)
		require.Len(t, hub.sent, 2)
	})
	t.Run(`late subscriber gets last event`, func(t *testing.T) {
		broker := New(nil, time.Minute)
		broker.Publish(wsmodels.ServerMessage{ToSessionID: "s1", Code: "ProfileLoaded"})
		broker.Publish(wsmodels.ServerMessage{ToSessionID: "s1", Code: "Question", QuestionIndex: 1})

		ch, unsubscribe := broker.Subscribe("s1")
		defer unsubscribe()
		msg := <-ch
		require.Equal(t, "Question", msg.Code)
		require.Equal(t, 1, msg.QuestionIndex)
	})
	t.Run(`unsubscribe`, func(t *testing.T) {
		broker := New(nil, time.Minute)
		_, unsubscribe := broker.Subscribe("s1")
		require.Equal(t, 1, broker.SubscriberCount("s1"))
		unsubscribe()
		unsubscribe()
		require.Equal(t, 0, broker.SubscriberCount("s1"))
	})
	t.Run(`replay to websocket`, func(t *testing.T) {
		hub := &fakeHub{}
		broker := New(hub, time.Minute)
		broker.Replay("s1")
		require.Empty(t, hub.sent)
		broker.Publish(wsmodels.ServerMessage{ToSessionID: "s1", Code: "Reset"})
		broker.Replay("s1")
		require.Len(t, hub.sent, 2)
		require.Equal(t, "Reset", hub.sent[1].Code)
	})
}
