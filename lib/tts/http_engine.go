package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

const speechPath = "/v1/audio/speech"

// HttpEngine синтез через OpenAI-совместимый API /v1/audio/speech
type HttpEngine struct {
	url    string
	model  string
	voice  string
	apiKey string
	client *http.Client
}

type speechRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
}

func NewHttpEngine(baseURL, model, voice, apiKey string) *HttpEngine {
	return &HttpEngine{
		url:    strings.TrimRight(baseURL, "/") + speechPath,
		model:  model,
		voice:  voice,
		apiKey: apiKey,
		client: &http.Client{},
	}
}

func (e *HttpEngine) Name() string {
	return "http"
}

func (e *HttpEngine) Synthesize(ctx context.Context, text string) ([]byte, error) {
	body, err := json.Marshal(speechRequest{
		Model:          e.model,
		Input:          text,
		Voice:          e.voice,
		ResponseFormat: "wav",
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка запроса к сервису синтеза речи")
	}
	defer resp.Body.Close()
	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения ответа сервиса синтеза речи")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("сервис синтеза речи вернул статус %d: %s", resp.StatusCode, string(audio))
	}
	return audio, nil
}
