package whisperclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranscribeWav(t *testing.T) {
	t.Run(`multipart request with model and language`, func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
			require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			require.Nil(t, r.ParseMultipartForm(1<<20))
			require.Equal(t, "tiny", r.FormValue("model"))
			require.Equal(t, "en", r.FormValue("language"))
			require.Equal(t, "json", r.FormValue("response_format"))
			file, _, err := r.FormFile("file")
			require.Nil(t, err)
			data, _ := io.ReadAll(file)
			require.Equal(t, []byte("RIFF"), data)
			_, _ = w.Write([]byte(`{"text":" I have 3 years experience"}`))
		}))
		defer server.Close()

		text, err := NewClient(server.URL+"/", "tiny", "", "secret").TranscribeWav(context.Background(), []byte("RIFF"))
		require.Nil(t, err)
		require.Equal(t, " I have 3 years experience", text)
	})

	t.Run(`non 200 returns body`, func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("bad audio"))
		}))
		defer server.Close()

		_, err := NewClient(server.URL, "tiny", "en", "").TranscribeWav(context.Background(), []byte("RIFF"))
		require.NotNil(t, err)
		require.Contains(t, err.Error(), "bad audio")
	})
}
