package geminiclient

import (
	"context"
	"strings"

	dbmodels "ai-interviewer-backend/models/db"

	"github.com/pkg/errors"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

type Provider interface {
	Generate(ctx context.Context, promt, text string, temperature float64) (generatedText string, err error)
	Name() dbmodels.AiName
}

type impl struct {
	client    *genai.Client
	modelName string
}

func NewClient(ctx context.Context, apiKey, model string) (Provider, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("не указан api key для Gemini")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания клиента Gemini")
	}
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	return impl{client: client, modelName: model}, nil
}

func (i impl) Name() dbmodels.AiName {
	return dbmodels.AiGeminiType
}

func (i impl) Generate(ctx context.Context, promt, text string, temperature float64) (string, error) {
	temp := float32(temperature)
	cfg := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if promt != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: promt}}}
	}
	resp, err := i.client.Models.GenerateContent(ctx, i.modelName, genai.Text(text), cfg)
	if err != nil {
		return "", errors.Wrap(err, "ошибка запроса к Gemini")
	}
	return collectText(resp)
}

func collectText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("Gemini вернул пустой ответ")
	}
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			partText := strings.TrimSpace(part.Text)
			if partText == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(partText)
		}
	}
	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("Gemini вернул пустой ответ")
	}
	return output, nil
}
