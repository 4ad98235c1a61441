package geminiclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestCollectText(t *testing.T) {
	t.Run(`joins non empty parts`, func(t *testing.T) {
		text, err := collectText(&genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []*genai.Part{{Text: " What did you build with AWS? "}, {Text: ""}}}},
				nil,
				{Content: nil},
			},
		})
		require.Nil(t, err)
		require.Equal(t, "What did you build with AWS?", text)
	})

	t.Run(`empty response is an error`, func(t *testing.T) {
		_, err := collectText(&genai.GenerateContentResponse{})
		require.NotNil(t, err)
		_, err = collectText(nil)
		require.NotNil(t, err)
	})
}

func TestNewClient(t *testing.T) {
	t.Run(`api key required`, func(t *testing.T) {
		_, err := NewClient(context.Background(), "  ", "")
		require.NotNil(t, err)
	})
}
