package transcriber

import (
	"context"
	"testing"

	"ai-interviewer-backend/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeNormalizer struct {
	err error
}

func (f fakeNormalizer) ToWav(_ context.Context, audio []byte) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]byte("wav:"), audio...), nil
}

type fakeEngine struct {
	text string
	err  error
	got  []byte
}

func (f *fakeEngine) TranscribeWav(_ context.Context, wav []byte) (string, error) {
	f.got = wav
	return f.text, f.err
}

func (f *fakeEngine) Name() string {
	return "fake"
}

func TestTranscribe(t *testing.T) {
	ctx := context.Background()

	t.Run(`normalized audio goes to engine`, func(t *testing.T) {
		engine := &fakeEngine{text: " I have 3 years experience \n"}
		text, err := New(engine, fakeNormalizer{}).Transcribe(ctx, []byte("webm"))
		require.Nil(t, err)
		require.Equal(t, "I have 3 years experience", text)
		require.Equal(t, []byte("wav:webm"), engine.got)
	})

	t.Run(`conversion failure`, func(t *testing.T) {
		_, err := New(&fakeEngine{}, fakeNormalizer{err: errors.New("ffmpeg")}).Transcribe(ctx, []byte("webm"))
		require.True(t, errors.Is(err, models.ErrTranscription))
	})

	t.Run(`engine failure`, func(t *testing.T) {
		_, err := New(&fakeEngine{err: errors.New("503")}, fakeNormalizer{}).Transcribe(ctx, []byte("webm"))
		require.True(t, errors.Is(err, models.ErrTranscription))
	})

	t.Run(`silence`, func(t *testing.T) {
		_, err := New(&fakeEngine{text: "  "}, fakeNormalizer{}).Transcribe(ctx, []byte("webm"))
		require.True(t, errors.Is(err, models.ErrTranscription))
	})

	t.Run(`empty audio`, func(t *testing.T) {
		_, err := New(&fakeEngine{}, fakeNormalizer{}).Transcribe(ctx, nil)
		require.True(t, errors.Is(err, models.ErrTranscription))
	})
}
