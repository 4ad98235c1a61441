package ollamaclient

// тело запроса /api/generate
type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	System  string          `json:"system,omitempty"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	// 0 - допустимое значение
	Temperature   *float64 `json:"temperature,omitempty"`
	TopP          float64  `json:"top_p,omitempty"`
	NumPredict    int      `json:"num_predict,omitempty"`
	RepeatPenalty float64  `json:"repeat_penalty,omitempty"`
}

type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func interviewOptions(temperature float64) generateOptions {
	return generateOptions{
		Temperature:   &temperature,
		TopP:          0.9,
		NumPredict:    1024,
		RepeatPenalty: 1.1,
	}
}
