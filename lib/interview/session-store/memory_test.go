package sessionstore

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ai-interviewer-backend/models"
	dbmodels "ai-interviewer-backend/models/db"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run(`unknown session`, func(t *testing.T) {
		store := NewMemory(time.Minute)
		_, err := store.Get(ctx, "missing")
		require.ErrorIs(t, err, models.ErrSessionNotFound)
	})
	t.Run(`get returns a copy`, func(t *testing.T) {
		store := NewMemory(time.Minute)
		require.NoError(t, store.Save(ctx, NewSession("s1")))

		sess, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		sess.QuestionIndex = 5

		again, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		require.Equal(t, 0, again.QuestionIndex)
		require.Equal(t, models.SessionStateIdle, again.State)
	})
	t.Run(`delete`, func(t *testing.T) {
		store := NewMemory(time.Minute)
		require.NoError(t, store.Save(ctx, NewSession("s1")))
		require.NoError(t, store.Delete(ctx, "s1"))
		_, err := store.Get(ctx, "s1")
		require.ErrorIs(t, err, models.ErrSessionNotFound)
	})
	t.Run(`second exclusive call is rejected`, func(t *testing.T) {
		store := NewMemory(time.Minute)
		started := make(chan struct{})
		release := make(chan struct{})
		done := make(chan error)
		go func() {
			done <- store.RunExclusive(ctx, "s1", func() error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started
		err := store.RunExclusive(ctx, "s1", func() error { return nil })
		require.ErrorIs(t, err, models.ErrBusy)
		// другая сессия не блокируется
		require.NoError(t, store.RunExclusive(ctx, "s2", func() error { return nil }))
		close(release)
		require.NoError(t, <-done)
		require.NoError(t, store.RunExclusive(ctx, "s1", func() error { return nil }))
	})
}

func TestSessionTransitions(t *testing.T) {
	sess := NewSession("s1")
	contact := dbmodels.ContactInfo{Name: "John Doe", Email: "john@x.com"}
	sess.LoadProfile(contact, json.RawMessage(`{"skills":["Go"]}`))
	require.Equal(t, models.SessionStateProfileLoaded, sess.State)
	require.Equal(t, "john@x.com", sess.GetEmail())

	sess.AskQuestion("Tell me about Go", "")
	sess.AskQuestion("What about channels?", "I like goroutines")
	require.Equal(t, models.SessionStateAwaitingAnswer, sess.State)
	require.Equal(t, 2, sess.QuestionIndex)
	require.True(t, sess.AwaitingAnswer)
	require.Equal(t, "I like goroutines", sess.LastTranscript)

	sess.LoadProfile(contact, json.RawMessage(`"plain"`))
	require.Equal(t, 0, sess.QuestionIndex)
	require.Empty(t, sess.CurrentQuestion)

	sess.Reset()
	require.Equal(t, models.SessionStateIdle, sess.State)
	require.Nil(t, sess.Profile)
	require.Empty(t, sess.GetEmail())
}
