package dbmodels

type AiLog struct {
	BaseModel
	SysPromt   string       `comment:"System промт"`
	UserPromt  string       `comment:"User промт"`
	Answer     string       `comment:"Ответ ИИ"`
	ReqestType AiReqestType `gorm:"type:varchar(255)" comment:"Тип запроса к ИИ"`
	AiName     AiName       `gorm:"type:varchar(255)" comment:"Название ИИ"`
	DurationMs int64        `comment:"Длительность запроса"`
}

type AiName string

const (
	AiYaGptType  AiName = "yandexgpt"
	AiOllamaType AiName = "ollama"
	AiGeminiType AiName = "gemini"
)

type AiReqestType string

const (
	AiParseResumeType   AiReqestType = "ParseResume"
	AiFirstQuestionType AiReqestType = "FirstQuestion"
	AiNextQuestionType  AiReqestType = "NextQuestion"
)
