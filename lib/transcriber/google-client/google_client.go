package googleclient

import (
	"context"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Client распознавание через Google Cloud Speech-to-Text.
// Авторизация через Application Default Credentials.
type Client struct {
	speechClient *speech.Client
	language     string
}

func NewClient(ctx context.Context, language string) (*Client, error) {
	speechClient, err := speech.NewClient(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания клиента Google Speech")
	}
	if language == "" {
		language = "en-US"
	}
	return &Client{speechClient: speechClient, language: language}, nil
}

func (c *Client) Name() string {
	return "google"
}

func (c *Client) Close() {
	if c.speechClient == nil {
		return
	}
	if err := c.speechClient.Close(); err != nil {
		log.WithError(err).Warn("ошибка закрытия клиента Google Speech")
	}
}

func (c *Client) TranscribeWav(ctx context.Context, wav []byte) (string, error) {
	resp, err := c.speechClient.Recognize(ctx, buildRequest(wav, c.language))
	if err != nil {
		return "", errors.Wrap(err, "ошибка запроса к Google Speech")
	}
	return joinResults(resp), nil
}

func buildRequest(wav []byte, language string) *speechpb.RecognizeRequest {
	return &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:            16000,
			AudioChannelCount:          1,
			LanguageCode:               language,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: wav},
		},
	}
}

func joinResults(resp *speechpb.RecognizeResponse) string {
	if resp == nil {
		return ""
	}
	parts := make([]string, 0, len(resp.Results))
	for _, result := range resp.Results {
		if result == nil || len(result.Alternatives) == 0 {
			continue
		}
		transcript := strings.TrimSpace(result.Alternatives[0].Transcript)
		if transcript != "" {
			parts = append(parts, transcript)
		}
	}
	return strings.Join(parts, " ")
}
