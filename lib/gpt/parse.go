package gpthandler

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ExtractJSON вырезает JSON из ответа модели: снимает markdown-ограждение и текст вокруг объекта
func ExtractJSON(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimPrefix(text, "json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	closing := "}"
	if text[start] == '[' {
		closing = "]"
	}
	end := strings.LastIndex(text, closing)
	if end <= start {
		return text
	}
	return text[start : end+1]
}

// NormalizeParsedResume возвращает JSON-объект, если модель вернула корректный JSON, иначе JSON-строку с ответом
func NormalizeParsedResume(answer string) json.RawMessage {
	candidate := ExtractJSON(answer)
	if json.Valid([]byte(candidate)) && strings.ContainsAny(candidate[:1], "{[") {
		buf := new(bytes.Buffer)
		if err := json.Compact(buf, []byte(candidate)); err == nil {
			return buf.Bytes()
		}
	}
	raw, _ := json.Marshal(strings.TrimSpace(answer))
	return raw
}

// ResumeForPromt представление разобранного резюме для подстановки в промт
func ResumeForPromt(parsed json.RawMessage) string {
	trimmed := bytes.TrimSpace(parsed)
	if len(trimmed) == 0 {
		return ""
	}
	if trimmed[0] == '"' {
		var value string
		if err := json.Unmarshal(trimmed, &value); err == nil {
			return value
		}
	}
	buf := new(bytes.Buffer)
	if err := json.Indent(buf, trimmed, "", "  "); err != nil {
		return string(trimmed)
	}
	return buf.String()
}

// cleanQuestion убирает из ответа модели обрамляющие кавычки и пробелы
func cleanQuestion(answer string) string {
	answer = strings.TrimSpace(answer)
	if len(answer) >= 2 && strings.HasPrefix(answer, `"`) && strings.HasSuffix(answer, `"`) {
		answer = strings.TrimSpace(answer[1 : len(answer)-1])
	}
	return answer
}
