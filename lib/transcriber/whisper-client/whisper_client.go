package whisperclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

const transcriptionsPath = "/v1/audio/transcriptions"

type WhisperResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
}

// Client клиент OpenAI-совместимого API распознавания (faster-whisper-server, whisper.cpp server, OpenAI)
type Client struct {
	url      string
	model    string
	language string
	apiKey   string
	client   *http.Client
}

func NewClient(baseURL, model, language, apiKey string) *Client {
	if language == "" {
		language = "en"
	}
	return &Client{
		url:      strings.TrimRight(baseURL, "/") + transcriptionsPath,
		model:    model,
		language: language,
		apiKey:   apiKey,
		client:   &http.Client{},
	}
}

func (c *Client) Name() string {
	return "whisper"
}

func (c *Client) TranscribeWav(ctx context.Context, wav []byte) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "answer.wav")
	if err != nil {
		return "", errors.Wrap(err, "ошибка формирования запроса")
	}
	if _, err = part.Write(wav); err != nil {
		return "", errors.Wrap(err, "ошибка формирования запроса")
	}
	if c.model != "" {
		_ = w.WriteField("model", c.model)
	}
	_ = w.WriteField("language", c.language)
	_ = w.WriteField("temperature", "0")
	_ = w.WriteField("response_format", "json")
	if err = w.Close(); err != nil {
		return "", errors.Wrap(err, "ошибка формирования запроса")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &buf)
	if err != nil {
		return "", errors.Wrap(err, "ошибка формирования запроса")
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "ошибка запроса к whisper")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "ошибка чтения ответа whisper")
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("whisper вернул статус %d: %s", resp.StatusCode, string(body))
	}

	var result WhisperResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return "", errors.Wrap(err, "некорректный ответ whisper")
	}
	return result.Text, nil
}
