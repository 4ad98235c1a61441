package gptmodels

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

type ParseResumeRequest struct {
	ResumeText string `json:"resume_text"`
}

func (r ParseResumeRequest) Validate() error {
	if strings.TrimSpace(r.ResumeText) == "" {
		return errors.New("не указан текст резюме")
	}
	return nil
}

type ParseResumeResponse struct {
	Result json.RawMessage `json:"result" swaggertype:"object"` // объект JSON или строка
}

type GenerateQuestionRequest struct {
	ParsedResume json.RawMessage `json:"parsed_resume" swaggertype:"object"`
}

func (r GenerateQuestionRequest) Validate() error {
	return validateParsedResume(r.ParsedResume)
}

type NextQuestionRequest struct {
	ParsedResume json.RawMessage `json:"parsed_resume" swaggertype:"object"`
	LastAnswer   string          `json:"last_answer"`
}

func (r NextQuestionRequest) Validate() error {
	if err := validateParsedResume(r.ParsedResume); err != nil {
		return err
	}
	if strings.TrimSpace(r.LastAnswer) == "" {
		return errors.New("не указан ответ кандидата")
	}
	return nil
}

type QuestionResponse struct {
	Question string `json:"question"`
}

func validateParsedResume(value json.RawMessage) error {
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`)) {
		return errors.New("не указано разобранное резюме")
	}
	return nil
}
