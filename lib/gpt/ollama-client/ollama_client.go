package ollamaclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	dbmodels "ai-interviewer-backend/models/db"

	"github.com/pkg/errors"
)

type Provider interface {
	Generate(ctx context.Context, promt, text string, temperature float64) (generatedText string, err error)
	Name() dbmodels.AiName
}

type impl struct {
	ollamaURL   string
	ollamaModel string
	httpClient  *http.Client
}

func NewClient(ollamaURL, ollamaModel string) Provider {
	return impl{
		ollamaURL:   strings.TrimRight(ollamaURL, "/"),
		ollamaModel: ollamaModel,
		httpClient:  &http.Client{},
	}
}

func (i impl) Name() dbmodels.AiName {
	return dbmodels.AiOllamaType
}

func (i impl) Generate(ctx context.Context, promt, text string, temperature float64) (string, error) {
	if i.ollamaURL == "" {
		return "", errors.New("не указан url для ollama")
	}
	if i.ollamaModel == "" {
		return "", errors.New("не указана модель для ollama")
	}
	request := generateRequest{
		Model:   i.ollamaModel,
		Prompt:  text,
		System:  promt,
		Options: interviewOptions(temperature),
	}
	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.ollamaURL+"/api/generate", bytes.NewReader(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := i.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "ошибка запроса к Ollama API")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("ошибка Ollama API: %s: %s", resp.Status, string(body))
	}

	var ollamaResponse generateResponse
	if err = json.Unmarshal(body, &ollamaResponse); err != nil {
		return "", errors.Wrap(err, "некорректный ответ Ollama API")
	}
	return strings.TrimSpace(ollamaResponse.Response), nil
}
