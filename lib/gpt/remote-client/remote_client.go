package remoteclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"ai-interviewer-backend/models"
	gptmodels "ai-interviewer-backend/models/api/gpt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Provider клиент удаленного сервиса разбора резюме и генерации вопросов
type Provider interface {
	ParseResume(ctx context.Context, resumeText string) (json.RawMessage, error)
	FirstQuestion(ctx context.Context, parsedResume json.RawMessage) (string, error)
	NextQuestion(ctx context.Context, parsedResume json.RawMessage, lastAnswer string) (string, error)
}

const (
	parseResumePath      = "/parse-resume/"
	generateQuestionPath = "/generate-question/"
	nextQuestionPath     = "/next-question/"
)

type impl struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) Provider {
	return impl{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

func (i impl) ParseResume(ctx context.Context, resumeText string) (json.RawMessage, error) {
	var resp gptmodels.ParseResumeResponse
	err := i.post(ctx, parseResumePath, gptmodels.ParseResumeRequest{ResumeText: resumeText}, &resp, models.ErrParsing)
	if err != nil {
		return nil, err
	}
	if isEmptyResult(resp.Result) {
		return nil, errors.Wrap(models.ErrParsing, "сервис вернул пустой результат")
	}
	return normalizeResult(resp.Result), nil
}

func (i impl) FirstQuestion(ctx context.Context, parsedResume json.RawMessage) (string, error) {
	var resp gptmodels.QuestionResponse
	err := i.post(ctx, generateQuestionPath, gptmodels.GenerateQuestionRequest{ParsedResume: parsedResume}, &resp, models.ErrQuestionService)
	if err != nil {
		return "", err
	}
	return checkQuestion(resp.Question)
}

func (i impl) NextQuestion(ctx context.Context, parsedResume json.RawMessage, lastAnswer string) (string, error) {
	var resp gptmodels.QuestionResponse
	request := gptmodels.NextQuestionRequest{ParsedResume: parsedResume, LastAnswer: lastAnswer}
	err := i.post(ctx, nextQuestionPath, request, &resp, models.ErrQuestionService)
	if err != nil {
		return "", err
	}
	return checkQuestion(resp.Question)
}

func (i impl) post(ctx context.Context, path string, request, response interface{}, kind error) error {
	logger := log.WithField("url", i.baseURL+path)
	body, err := json.Marshal(request)
	if err != nil {
		return errors.Wrapf(kind, "ошибка формирования запроса: %v", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(kind, "ошибка формирования запроса: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := i.httpClient.Do(req)
	if err != nil {
		logger.WithError(err).Error("ошибка запроса к сервису")
		return errors.Wrapf(kind, "ошибка запроса к сервису: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(kind, "ошибка чтения ответа сервиса: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		logger.
			WithField("status", resp.StatusCode).
			WithField("body", string(respBody)).
			Error("сервис вернул ошибку")
		return &models.ServiceError{Kind: kind, Status: resp.StatusCode, Body: string(respBody)}
	}
	if err = json.Unmarshal(respBody, response); err != nil {
		return errors.Wrapf(kind, "некорректный ответ сервиса: %v", err)
	}
	return nil
}

// isEmptyResult нет поля result, null или пустая строка
func isEmptyResult(result json.RawMessage) bool {
	trimmed := bytes.TrimSpace(result)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return true
	}
	var text string
	if err := json.Unmarshal(trimmed, &text); err == nil {
		return strings.TrimSpace(text) == ""
	}
	return false
}

// normalizeResult строку с JSON внутри превращает в объект, остальное оставляет как есть
func normalizeResult(result json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(result)
	if trimmed[0] != '"' {
		return trimmed
	}
	var text string
	if err := json.Unmarshal(trimmed, &text); err != nil {
		return trimmed
	}
	inner := strings.TrimSpace(text)
	if strings.HasPrefix(inner, "{") && json.Valid([]byte(inner)) {
		buf := new(bytes.Buffer)
		if err := json.Compact(buf, []byte(inner)); err == nil {
			return buf.Bytes()
		}
	}
	return trimmed
}

func checkQuestion(question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", errors.Wrap(models.ErrQuestionService, "сервис вернул пустой вопрос")
	}
	return question, nil
}
