package yagptclient

import (
	"context"
	"strings"

	dbmodels "ai-interviewer-backend/models/db"

	"github.com/pkg/errors"
	yandexgptclient "github.com/sheeiavellie/go-yandexgpt"
)

type Provider interface {
	Generate(ctx context.Context, promt, text string, temperature float64) (generatedText string, err error)
	Name() dbmodels.AiName
}

type impl struct {
	client    *yandexgptclient.YandexGPTClient
	catalogID string
	maxTokens int
}

func NewClient(token, catalog string) Provider {
	return impl{
		client:    yandexgptclient.NewYandexGPTClientWithIAMToken(token),
		catalogID: catalog,
		maxTokens: 2000,
	}
}

func (i impl) Name() dbmodels.AiName {
	return dbmodels.AiYaGptType
}

func (i impl) Generate(ctx context.Context, promt, text string, temperature float64) (string, error) {
	messages := make([]yandexgptclient.YandexGPTMessage, 0, 2)
	if promt != "" {
		messages = append(messages, yandexgptclient.YandexGPTMessage{
			Role: yandexgptclient.YandexGPTMessageRoleSystem,
			Text: promt,
		})
	}
	messages = append(messages, yandexgptclient.YandexGPTMessage{
		Role: yandexgptclient.YandexGPTMessageRoleUser,
		Text: text,
	})
	request := yandexgptclient.YandexGPTRequest{
		ModelURI: yandexgptclient.MakeModelURI(i.catalogID, yandexgptclient.YandexGPTModelLite),
		CompletionOptions: yandexgptclient.YandexGPTCompletionOptions{
			Stream:      false,
			Temperature: temperature,
			MaxTokens:   i.maxTokens,
		},
		Messages: messages,
	}

	response, err := i.client.CreateRequest(ctx, request)
	if err != nil {
		return "", errors.Wrap(err, "Ошибка при отправке запроса на генерацию в API YandexGPT")
	}
	if len(response.Result.Alternatives) == 0 {
		return "", errors.New("API YandexGPT вернул пустой ответ")
	}
	return strings.TrimSpace(response.Result.Alternatives[0].Message.Text), nil
}
