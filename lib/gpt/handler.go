package gpthandler

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	ailogstore "ai-interviewer-backend/lib/gpt/store"
	"ai-interviewer-backend/lib/metrics"
	"ai-interviewer-backend/lib/utils/helpers"
	"ai-interviewer-backend/models"
	dbmodels "ai-interviewer-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// LLMClient клиент языковой модели
type LLMClient interface {
	Generate(ctx context.Context, promt, text string, temperature float64) (string, error)
	Name() dbmodels.AiName
}

// Provider разбор резюме и генерация вопросов интервью
type Provider interface {
	ParseResume(ctx context.Context, resumeText string) (json.RawMessage, error)
	FirstQuestion(ctx context.Context, parsedResume json.RawMessage) (string, error)
	NextQuestion(ctx context.Context, parsedResume json.RawMessage, lastAnswer string) (string, error)
}

var Instance Provider

func NewHandler(client LLMClient, logStore ailogstore.Provider) {
	Instance = New(client, logStore)
}

func New(client LLMClient, logStore ailogstore.Provider) Provider {
	return impl{
		client:   client,
		logStore: logStore,
	}
}

type impl struct {
	client   LLMClient
	logStore ailogstore.Provider
}

func (i impl) getLogger() *log.Entry {
	return log.WithField("ai", i.client.Name())
}

func (i impl) ParseResume(ctx context.Context, resumeText string) (json.RawMessage, error) {
	answer, err := i.generate(ctx, dbmodels.AiParseResumeType, parseResumeSystemPromt,
		fmt.Sprintf(parseResumePattern, resumeText), parseResumeTemperature)
	if err != nil {
		return nil, errors.Wrapf(models.ErrParsing, "%v", err)
	}
	if strings.TrimSpace(answer) == "" {
		return nil, errors.Wrap(models.ErrParsing, "модель вернула пустой ответ")
	}
	parsed := NormalizeParsedResume(answer)
	if len(parsed) > 0 && parsed[0] == '"' {
		i.getLogger().Warn("модель вернула резюме не в формате JSON, сохранен текст ответа")
	}
	return parsed, nil
}

func (i impl) FirstQuestion(ctx context.Context, parsedResume json.RawMessage) (string, error) {
	answer, err := i.generate(ctx, dbmodels.AiFirstQuestionType, interviewerSystemPromt,
		fmt.Sprintf(firstQuestionPattern, ResumeForPromt(parsedResume)), questionTemperature)
	if err != nil {
		return "", errors.Wrapf(models.ErrQuestionService, "%v", err)
	}
	return i.checkQuestion(answer)
}

func (i impl) NextQuestion(ctx context.Context, parsedResume json.RawMessage, lastAnswer string) (string, error) {
	answer, err := i.generate(ctx, dbmodels.AiNextQuestionType, interviewerSystemPromt,
		fmt.Sprintf(nextQuestionPattern, ResumeForPromt(parsedResume), lastAnswer), questionTemperature)
	if err != nil {
		return "", errors.Wrapf(models.ErrQuestionService, "%v", err)
	}
	return i.checkQuestion(answer)
}

func (i impl) checkQuestion(answer string) (string, error) {
	question := cleanQuestion(answer)
	if question == "" {
		return "", errors.Wrap(models.ErrQuestionService, "модель вернула пустой вопрос")
	}
	return question, nil
}

func (i impl) generate(ctx context.Context, reqType dbmodels.AiReqestType, sysPromt, userPromt string, temperature float64) (string, error) {
	logger := i.getLogger().WithField("request_type", reqType)
	now := time.Now()
	answer, err := i.client.Generate(ctx, sysPromt, userPromt, temperature)
	duration := time.Since(now)
	metrics.ObserveLLMRequest(string(reqType), string(i.client.Name()), duration, err)
	if err != nil {
		logger.WithError(err).Error("ошибка запроса к ИИ")
		return "", err
	}
	logger.
		WithField("answer", helpers.TruncateForLog(answer, 500)).
		WithField("answer_duration_sec", duration.Seconds()).
		Info("Ответ AI получен")
	i.saveLog(reqType, sysPromt, userPromt, answer, duration)
	return answer, nil
}

func (i impl) saveLog(reqType dbmodels.AiReqestType, sysPromt, userPromt, answer string, duration time.Duration) {
	if i.logStore == nil {
		return
	}
	_, err := i.logStore.Save(dbmodels.AiLog{
		SysPromt:   sysPromt,
		UserPromt:  userPromt,
		Answer:     answer,
		ReqestType: reqType,
		AiName:     i.client.Name(),
		DurationMs: duration.Milliseconds(),
	})
	if err != nil {
		i.getLogger().WithError(err).Warn("ошибка сохранения лога запроса к ИИ")
	}
}
