package initializers

import (
	"context"
	"strings"

	"ai-interviewer-backend/config"
	"ai-interviewer-backend/db"
	gpthandler "ai-interviewer-backend/lib/gpt"
	geminiclient "ai-interviewer-backend/lib/gpt/gemini-client"
	ollamaclient "ai-interviewer-backend/lib/gpt/ollama-client"
	remoteclient "ai-interviewer-backend/lib/gpt/remote-client"
	ailogstore "ai-interviewer-backend/lib/gpt/store"
	yagptclient "ai-interviewer-backend/lib/gpt/yagpt-client"
	"ai-interviewer-backend/lib/interview"
	"ai-interviewer-backend/lib/transcriber"
	googleclient "ai-interviewer-backend/lib/transcriber/google-client"
	whisperclient "ai-interviewer-backend/lib/transcriber/whisper-client"
	"ai-interviewer-backend/lib/tts"
	audionormalize "ai-interviewer-backend/lib/utils/audio-normalize"

	log "github.com/sirupsen/logrus"
)

const (
	textServiceModeRemote = "remote"

	aiProviderYandex = "yandexgpt"
	aiProviderOllama = "ollama"
	aiProviderGemini = "gemini"

	sttProviderGoogle = "google"
	ttsProviderHttp   = "http"
)

// InitTextServices разбор резюме и вопросы: локальная LLM или внешний сервис /parse-resume/
func InitTextServices(ctx context.Context) interview.TextServices {
	if strings.EqualFold(config.Conf.AI.TextServiceMode, textServiceModeRemote) {
		log.WithField("url", config.Conf.AI.RemoteURL).Info("Разбор резюме и вопросы через внешний сервис")
		return remoteclient.NewClient(config.Conf.AI.RemoteURL)
	}
	gpthandler.NewHandler(newLLMClient(ctx), ailogstore.NewInstance(db.DB))
	return gpthandler.Instance
}

func newLLMClient(ctx context.Context) gpthandler.LLMClient {
	provider := strings.ToLower(config.Conf.AI.Provider)
	logger := log.WithField("provider", provider)
	switch provider {
	case aiProviderOllama:
		logger.WithField("model", config.Conf.AI.Ollama.OllamaModel).Info("LLM: ollama")
		return ollamaclient.NewClient(config.Conf.AI.Ollama.OllamaURL, config.Conf.AI.Ollama.OllamaModel)
	case aiProviderGemini:
		client, err := geminiclient.NewClient(ctx, config.Conf.AI.Gemini.APIKey, config.Conf.AI.Gemini.Model)
		if err != nil {
			panic(err.Error())
		}
		logger.WithField("model", config.Conf.AI.Gemini.Model).Info("LLM: gemini")
		return client
	case aiProviderYandex:
		logger.Info("LLM: yandexgpt")
		return yagptclient.NewClient(config.Conf.AI.YandexGPT.IAMToken, config.Conf.AI.YandexGPT.CatalogID)
	default:
		panic("неизвестный провайдер LLM: " + config.Conf.AI.Provider)
	}
}

// InitTranscriber распознавание ответов: whisper (по умолчанию) или Google Speech
func InitTranscriber(ctx context.Context) {
	normalizer := audionormalize.New(config.Conf.STT.FFmpegPath)
	if strings.EqualFold(config.Conf.STT.Provider, sttProviderGoogle) {
		client, err := googleclient.NewClient(ctx, config.Conf.STT.GoogleLanguage)
		if err != nil {
			panic(err.Error())
		}
		go func() {
			<-ctx.Done()
			client.Close()
		}()
		transcriber.NewHandler(client, normalizer)
		log.Info("STT: google")
		return
	}
	transcriber.NewHandler(whisperclient.NewClient(config.Conf.STT.WhisperURL, config.Conf.STT.WhisperModel,
		config.Conf.STT.Language, config.Conf.STT.WhisperAPIKey), normalizer)
	log.WithField("url", config.Conf.STT.WhisperURL).Info("STT: whisper")
}

// InitSynthesizer озвучка вопросов: espeak-ng локально или HTTP сервис /v1/audio/speech
func InitSynthesizer() {
	var engine tts.Engine
	if strings.EqualFold(config.Conf.TTS.Provider, ttsProviderHttp) {
		engine = tts.NewHttpEngine(config.Conf.TTS.HttpURL, config.Conf.TTS.HttpModel,
			config.Conf.TTS.HttpVoice, config.Conf.TTS.HttpAPIKey)
	} else {
		engine = tts.NewEspeakEngine(config.Conf.TTS.EspeakPath, config.Conf.TTS.Voice, config.Conf.TTS.Rate)
	}
	tts.NewHandler(engine, config.Conf.TTSCacheTTL())
	log.WithField("engine", engine.Name()).Info("TTS инициализирован")
}
