package config

import (
	"os"
	"time"

	"github.com/gotify/configor"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr     string `default:"" env:"APP_HOST"`
		Port           int    `default:"8080"  env:"APP_PORT"`
		LogLevel       string `default:"info" env:"APP_LOG_LEVEL"`
		BodyLimitMb    int    `default:"50" env:"APP_BODY_LIMIT_MB"`
		SessionTTLMin  int    `default:"120" env:"APP_SESSION_TTL_MIN"`
		ServiceTimeout int    `default:"30" env:"APP_SERVICE_TIMEOUT_SEC"`
		ErrNotifyURL   string `default:"" env:"APP_ERR_NOTIFY_URL"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"ai-interviewer" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Redis struct {
		Addr     string `default:"" env:"REDIS_ADDR"`
		Password string `default:"" env:"REDIS_PASSWORD"`
		DB       int    `default:"0" env:"REDIS_DB"`
	}
	S3 struct {
		Endpoint        string `default:"" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"ai-interviewer" env:"S3_BUCKET_NAME"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	Auth struct {
		JWTSecret  string `default:"change-me" env:"AUTH_JWT_SECRET"`
		AdminToken string `default:"" env:"AUTH_ADMIN_TOKEN"`
	}
	AI struct {
		// local - генерация через LLM в этом сервисе, remote - через внешний сервис /parse-resume/
		TextServiceMode string `default:"local" env:"AI_TEXT_SERVICE_MODE"`
		Provider        string `default:"yandexgpt" env:"AI_PROVIDER"`
		RemoteURL       string `default:"http://localhost:8000" env:"AI_REMOTE_URL"`
		YandexGPT       struct {
			IAMToken  string `default:"" env:"YAGPT_IAM_TOKEN"`
			CatalogID string `default:"" env:"YAGPT_CATALOG_ID"`
		}
		Ollama struct {
			OllamaURL   string `default:"http://localhost:11434" env:"OLLAMA_URL"`
			OllamaModel string `default:"llama3:70b" env:"OLLAMA_MODEL"`
		}
		Gemini struct {
			APIKey string `default:"" env:"GEMINI_API_KEY"`
			Model  string `default:"gemini-2.5-flash" env:"GEMINI_MODEL"`
		}
	}
	STT struct {
		Provider       string `default:"whisper" env:"STT_PROVIDER"`
		WhisperURL     string `default:"http://localhost:9000" env:"STT_WHISPER_URL"`
		WhisperModel   string `default:"tiny" env:"STT_WHISPER_MODEL"`
		WhisperAPIKey  string `default:"" env:"STT_WHISPER_API_KEY"`
		Language       string `default:"en" env:"STT_LANGUAGE"`
		GoogleLanguage string `default:"en-US" env:"STT_GOOGLE_LANGUAGE"`
		FFmpegPath     string `default:"ffmpeg" env:"STT_FFMPEG_PATH"`
	}
	TTS struct {
		Provider    string `default:"espeak" env:"TTS_PROVIDER"`
		EspeakPath  string `default:"espeak-ng" env:"TTS_ESPEAK_PATH"`
		Voice       string `default:"en-us" env:"TTS_VOICE"`
		Rate        int    `default:"170" env:"TTS_RATE"`
		HttpURL     string `default:"" env:"TTS_HTTP_URL"`
		HttpModel   string `default:"tts-1" env:"TTS_HTTP_MODEL"`
		HttpVoice   string `default:"alloy" env:"TTS_HTTP_VOICE"`
		HttpAPIKey  string `default:"" env:"TTS_HTTP_API_KEY"`
		CacheTTLMin int    `default:"60" env:"TTS_CACHE_TTL_MIN"`
	}
	Report struct {
		Recipient     string `default:"" env:"REPORT_RECIPIENT"`
		RetentionDays int    `default:"180" env:"REPORT_RETENTION_DAYS"`
		FontFile      string `default:"" env:"REPORT_FONT_FILE"`
	}
}

func (c *Configuration) SessionTTL() time.Duration {
	return time.Duration(c.App.SessionTTLMin) * time.Minute
}

func (c *Configuration) ServiceTimeout() time.Duration {
	return time.Duration(c.App.ServiceTimeout) * time.Second
}

func (c *Configuration) TTSCacheTTL() time.Duration {
	return time.Duration(c.TTS.CacheTTLMin) * time.Minute
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("ошибка чтения файла .env")
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
