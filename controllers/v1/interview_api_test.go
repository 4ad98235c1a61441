package apiv1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ai-interviewer-backend/lib/interview/events"
	authutils "ai-interviewer-backend/lib/utils/auth-utils"
	"ai-interviewer-backend/models"
	apimodels "ai-interviewer-backend/models/api"
	interviewapimodels "ai-interviewer-backend/models/api/interview"
	wsmodels "ai-interviewer-backend/models/ws"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/r3labs/sse/v2"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newInterviewApp(interviewer *fakeInterviewer, broker events.Provider) *fiber.App {
	app := fiber.New()
	InitInterviewApiRouters(app, InterviewRouterConfig{
		Interviewer: interviewer,
		Broker:      broker,
		JWTSecret:   testSecret,
		SessionTTL:  time.Hour,
	})
	return app
}

func sessionToken(t *testing.T, sessionID string) string {
	token, err := authutils.GetSessionToken(sessionID, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (int, []byte) {
	resp, err := app.Test(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decodeView(t *testing.T, data []byte) interviewapimodels.SessionView {
	var resp struct {
		apimodels.Response
		Data interviewapimodels.SessionView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &resp))
	require.Equal(t, "success", resp.Status)
	return resp.Data
}

func TestInterviewApiSession(t *testing.T) {
	t.Run(`create session returns usable token`, func(t *testing.T) {
		interviewer := &fakeInterviewer{view: interviewapimodels.SessionView{State: models.SessionStateIdle}}
		app := newInterviewApp(interviewer, nil)

		status, data := doRequest(t, app, httptest.NewRequest(http.MethodPost, "/interview/session", nil))
		require.Equal(t, http.StatusOK, status)
		var created struct {
			Data interviewapimodels.SessionCreated `json:"data"`
		}
		require.NoError(t, json.Unmarshal(data, &created))
		require.Equal(t, "s1", created.Data.SessionID)
		require.NotEmpty(t, created.Data.Token)

		req := httptest.NewRequest(http.MethodGet, "/interview/session", nil)
		req.Header.Set("Authorization", "Bearer "+created.Data.Token)
		status, data = doRequest(t, app, req)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "s1", decodeView(t, data).SessionID)
	})
	t.Run(`token required`, func(t *testing.T) {
		app := newInterviewApp(&fakeInterviewer{}, nil)

		status, _ := doRequest(t, app, httptest.NewRequest(http.MethodPost, "/interview/advance", nil))
		require.Equal(t, http.StatusUnauthorized, status)

		req := httptest.NewRequest(http.MethodPost, "/interview/advance", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		status, _ = doRequest(t, app, req)
		require.Equal(t, http.StatusUnauthorized, status)
	})
	t.Run(`token in query`, func(t *testing.T) {
		interviewer := &fakeInterviewer{}
		app := newInterviewApp(interviewer, nil)

		status, data := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/interview/session?token="+sessionToken(t, "s7"), nil))
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "s7", decodeView(t, data).SessionID)
	})
}

func TestInterviewApiAdvance(t *testing.T) {
	t.Run(`first question without audio`, func(t *testing.T) {
		interviewer := &fakeInterviewer{view: interviewapimodels.SessionView{
			State:           models.SessionStateAwaitingAnswer,
			CurrentQuestion: "Tell me about your Python experience.",
			QuestionIndex:   1,
			AwaitingAnswer:  true,
			PlayAudio:       true,
		}}
		app := newInterviewApp(interviewer, nil)

		req := httptest.NewRequest(http.MethodPost, "/interview/advance", nil)
		req.Header.Set("Authorization", "Bearer "+sessionToken(t, "s1"))
		status, data := doRequest(t, app, req)
		require.Equal(t, http.StatusOK, status)
		view := decodeView(t, data)
		require.Equal(t, 1, view.QuestionIndex)
		require.True(t, view.PlayAudio)
		require.Nil(t, interviewer.audio)
	})
	t.Run(`answer audio is passed through`, func(t *testing.T) {
		interviewer := &fakeInterviewer{}
		app := newInterviewApp(interviewer, nil)

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, err := writer.CreateFormFile("audio", "answer.webm")
		require.NoError(t, err)
		_, err = part.Write([]byte("webm-bytes"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/interview/advance", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+sessionToken(t, "s1"))
		status, _ := doRequest(t, app, req)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, []byte("webm-bytes"), interviewer.audio)
	})
	t.Run(`error statuses`, func(t *testing.T) {
		cases := []struct {
			err    error
			status int
			kind   string
		}{
			{models.ErrBusy, http.StatusConflict, "busy"},
			{models.ErrInvalidState, http.StatusConflict, "invalid_state"},
			{models.ErrSessionNotFound, http.StatusNotFound, "session_not_found"},
			{errors.Wrap(models.ErrTranscription, "empty transcript"), http.StatusUnprocessableEntity, "transcription"},
			{errors.Wrap(models.ErrQuestionService, "timeout"), http.StatusBadGateway, "question_service"},
		}
		for _, tc := range cases {
			app := newInterviewApp(&fakeInterviewer{err: tc.err}, nil)
			req := httptest.NewRequest(http.MethodPost, "/interview/advance", nil)
			req.Header.Set("Authorization", "Bearer "+sessionToken(t, "s1"))
			status, data := doRequest(t, app, req)
			require.Equal(t, tc.status, status, tc.err.Error())
			require.Contains(t, string(data), `"status":"fail"`)
			require.Contains(t, string(data), fmt.Sprintf(`"error_kind":%q`, tc.kind))
		}
	})
}

func TestInterviewApiResume(t *testing.T) {
	buildForm := func(t *testing.T, fields map[string]string, withFile bool) (*bytes.Buffer, string) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		for k, v := range fields {
			require.NoError(t, writer.WriteField(k, v))
		}
		if withFile {
			part, err := writer.CreateFormFile("file", "resume.txt")
			require.NoError(t, err)
			_, err = part.Write([]byte("John Doe, john@x.com, Python, AWS"))
			require.NoError(t, err)
		}
		require.NoError(t, writer.Close())
		return body, writer.FormDataContentType()
	}
	fields := map[string]string{
		"name":     "John Doe",
		"email":    " John@X.com ",
		"phone":    "+1 555 0100",
		"position": "Backend Engineer",
	}

	t.Run(`upload with contacts`, func(t *testing.T) {
		interviewer := &fakeInterviewer{view: interviewapimodels.SessionView{State: models.SessionStateProfileLoaded}}
		app := newInterviewApp(interviewer, nil)

		body, contentType := buildForm(t, fields, true)
		req := httptest.NewRequest(http.MethodPost, "/interview/resume", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+sessionToken(t, "s1"))
		status, data := doRequest(t, app, req)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, models.SessionStateProfileLoaded, decodeView(t, data).State)
		require.Equal(t, " John@X.com ", interviewer.contact.Email)
		require.Equal(t, "Backend Engineer", interviewer.contact.Position)
		require.Equal(t, "resume.txt", interviewer.file.FileName)
		require.Equal(t, "John Doe, john@x.com, Python, AWS", string(interviewer.file.Body))
	})
	t.Run(`missing file`, func(t *testing.T) {
		interviewer := &fakeInterviewer{}
		app := newInterviewApp(interviewer, nil)

		body, contentType := buildForm(t, fields, false)
		req := httptest.NewRequest(http.MethodPost, "/interview/resume", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+sessionToken(t, "s1"))
		status, _ := doRequest(t, app, req)
		require.Equal(t, http.StatusBadRequest, status)
		require.Empty(t, interviewer.sessionIDs)
	})
	t.Run(`missing contact field`, func(t *testing.T) {
		interviewer := &fakeInterviewer{}
		app := newInterviewApp(interviewer, nil)

		body, contentType := buildForm(t, map[string]string{"name": "John Doe", "email": "john@x.com"}, true)
		req := httptest.NewRequest(http.MethodPost, "/interview/resume", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+sessionToken(t, "s1"))
		status, _ := doRequest(t, app, req)
		require.Equal(t, http.StatusBadRequest, status)
		require.Empty(t, interviewer.sessionIDs)
	})
	t.Run(`position is optional`, func(t *testing.T) {
		interviewer := &fakeInterviewer{view: interviewapimodels.SessionView{State: models.SessionStateProfileLoaded}}
		app := newInterviewApp(interviewer, nil)

		body, contentType := buildForm(t, map[string]string{"name": "John Doe", "email": "john@x.com", "phone": "+1 555 0100"}, true)
		req := httptest.NewRequest(http.MethodPost, "/interview/resume", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+sessionToken(t, "s1"))
		status, _ := doRequest(t, app, req)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, []string{"s1"}, interviewer.sessionIDs)
		require.Empty(t, interviewer.contact.Position)
	})
	t.Run(`lookup not found`, func(t *testing.T) {
		interviewer := &fakeInterviewer{err: errors.Wrap(models.ErrNotFound, "no candidate found with email a@b.c")}
		app := newInterviewApp(interviewer, nil)

		req := httptest.NewRequest(http.MethodPost, "/interview/lookup", strings.NewReader(`{"email":"a@b.c"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+sessionToken(t, "s1"))
		status, _ := doRequest(t, app, req)
		require.Equal(t, http.StatusNotFound, status)
		require.Equal(t, "a@b.c", interviewer.lookupEmail)
	})
}

func TestInterviewApiFiles(t *testing.T) {
	interviewer := &fakeInterviewer{}
	app := newInterviewApp(interviewer, nil)
	token := sessionToken(t, "s1")

	t.Run(`question audio`, func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/interview/question/audio", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "audio/wav", resp.Header.Get("Content-Type"))
	})
	t.Run(`report`, func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/interview/report", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		require.Contains(t, resp.Header.Get("Content-Disposition"), "interview-s1.pdf")
	})
	t.Run(`finish with notify email`, func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/interview/finish", strings.NewReader(`{"notify_email":"hr@x.com"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		status, _ := doRequest(t, app, req)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "hr@x.com", interviewer.notifyEmail)
	})
}

func TestInterviewApiEvents(t *testing.T) {
	prevKeepAlive := sseKeepAlive
	sseKeepAlive = 50 * time.Millisecond
	defer func() { sseKeepAlive = prevKeepAlive }()

	broker := events.New(nil, time.Minute)
	app := newInterviewApp(&fakeInterviewer{}, broker)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		_ = app.Listener(ln)
	}()
	defer func() {
		_ = app.ShutdownWithTimeout(time.Second)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client := sse.NewClient(fmt.Sprintf("http://%s/interview/events?token=%s", ln.Addr().String(), sessionToken(t, "s1")))
	received := make(chan *sse.Event, 4)
	go func() {
		_ = client.SubscribeRawWithContext(ctx, func(msg *sse.Event) {
			received <- msg
		})
	}()

	require.Eventually(t, func() bool {
		return broker.SubscriberCount("s1") == 1
	}, 3*time.Second, 20*time.Millisecond)

	broker.Publish(wsmodels.ServerMessage{
		ToSessionID:   "s1",
		Code:          string(models.EventQuestion),
		QuestionIndex: 1,
		Question:      "Tell me about your Python experience.",
	})
	broker.Publish(wsmodels.ServerMessage{ToSessionID: "other", Code: string(models.EventQuestion)})

	select {
	case msg := <-received:
		require.Equal(t, string(models.EventQuestion), string(msg.Event))
		var payload wsmodels.ServerMessage
		require.NoError(t, json.Unmarshal(msg.Data, &payload))
		require.Equal(t, 1, payload.QuestionIndex)
		require.Equal(t, "Tell me about your Python experience.", payload.Question)
	case <-ctx.Done():
		t.Fatal("событие не получено")
	}

	cancel()
	require.Eventually(t, func() bool {
		return broker.SubscriberCount("s1") == 0
	}, 3*time.Second, 20*time.Millisecond)
}
