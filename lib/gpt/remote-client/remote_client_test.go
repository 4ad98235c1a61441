package remoteclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-interviewer-backend/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestRemoteClient(t *testing.T) {
	ctx := context.Background()

	t.Run(`result as object`, func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/parse-resume/", r.URL.Path)
			var body map[string]string
			require.Nil(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, "John Doe, john@x.com, Python, AWS", body["resume_text"])
			_, _ = w.Write([]byte(`{"result":{"skills":["Python","AWS"]}}`))
		}))
		defer server.Close()

		parsed, err := NewClient(server.URL).ParseResume(ctx, "John Doe, john@x.com, Python, AWS")
		require.Nil(t, err)
		require.JSONEq(t, `{"skills":["Python","AWS"]}`, string(parsed))
	})

	t.Run(`result as json encoded string`, func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"result":"{\"skills\": [\"Go\"]}"}`))
		}))
		defer server.Close()

		parsed, err := NewClient(server.URL+"/").ParseResume(ctx, "resume")
		require.Nil(t, err)
		require.Equal(t, `{"skills":["Go"]}`, string(parsed))
	})

	t.Run(`result as free text stays a string`, func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"result":"Name: John"}`))
		}))
		defer server.Close()

		parsed, err := NewClient(server.URL).ParseResume(ctx, "resume")
		require.Nil(t, err)
		require.Equal(t, `"Name: John"`, string(parsed))
	})

	t.Run(`null or empty result is a parsing error`, func(t *testing.T) {
		for _, body := range []string{`{"result":null}`, `{"result":""}`, `{"result":"  "}`, `{}`} {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			parsed, err := NewClient(server.URL).ParseResume(ctx, "resume")
			server.Close()
			require.Nil(t, parsed, body)
			require.True(t, errors.Is(err, models.ErrParsing), body)
		}
	})

	t.Run(`non 200 is ServiceError with body`, func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail":"groq unavailable"}`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL).ParseResume(ctx, "resume")
		require.True(t, errors.Is(err, models.ErrParsing))
		var serviceErr *models.ServiceError
		require.True(t, errors.As(err, &serviceErr))
		require.Equal(t, http.StatusInternalServerError, serviceErr.Status)
		require.Equal(t, `{"detail":"groq unavailable"}`, serviceErr.Body)

		_, err = NewClient(server.URL).FirstQuestion(ctx, json.RawMessage(`{}`))
		require.True(t, errors.Is(err, models.ErrQuestionService))
	})

	t.Run(`next question body is exactly parsed_resume and last_answer`, func(t *testing.T) {
		var raw []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/next-question/", r.URL.Path)
			raw, _ = io.ReadAll(r.Body)
			_, _ = w.Write([]byte(`{"question":" Which AWS services? "}`))
		}))
		defer server.Close()

		question, err := NewClient(server.URL).NextQuestion(ctx, json.RawMessage(`{"skills":["Python","AWS"]}`), "I have 3 years experience")
		require.Nil(t, err)
		require.Equal(t, "Which AWS services?", question)
		require.JSONEq(t, `{"parsed_resume":{"skills":["Python","AWS"]},"last_answer":"I have 3 years experience"}`, string(raw))
	})

	t.Run(`network error is wrapped`, func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()
		_, err := NewClient(url).NextQuestion(ctx, json.RawMessage(`{}`), "answer")
		require.True(t, errors.Is(err, models.ErrQuestionService))
	})
}
