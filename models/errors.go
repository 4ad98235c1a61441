package models

import (
	"fmt"

	"github.com/pkg/errors"
)

// Ошибки сценария интервью. Проверяются через errors.Is, поверх оборачиваются errors.Wrap.
var (
	ErrExtraction      = errors.New("не удалось извлечь текст резюме")
	ErrParsing         = errors.New("ошибка разбора резюме")
	ErrQuestionService = errors.New("ошибка сервиса генерации вопросов")
	ErrTranscription   = errors.New("ошибка распознавания ответа")
	ErrSynthesis       = errors.New("ошибка синтеза речи")
	ErrNotFound        = errors.New("кандидат не найден")
	ErrStorage         = errors.New("ошибка сохранения данных")
	ErrBusy            = errors.New("предыдущий запрос сессии еще выполняется")
	ErrInvalidState    = errors.New("операция недоступна в текущем состоянии сессии")
	ErrSessionNotFound = errors.New("сессия не найдена или истекла")
)

// ServiceError ответ удаленного сервиса с кодом, отличным от 200.
// Kind - одна из ошибок выше, по ней работает errors.Is.
type ServiceError struct {
	Kind   error
	Status int
	Body   string
}

func (e *ServiceError) Error() string {
	if e.Kind == nil {
		return fmt.Sprintf("сервис вернул статус %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("%s: сервис вернул статус %d: %s", e.Kind.Error(), e.Status, e.Body)
}

func (e *ServiceError) Unwrap() error {
	return e.Kind
}

// ErrorKind короткий код ошибки для клиента
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBusy):
		return "busy"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrSessionNotFound):
		return "session_not_found"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrExtraction):
		return "extraction"
	case errors.Is(err, ErrParsing):
		return "parsing"
	case errors.Is(err, ErrQuestionService):
		return "question_service"
	case errors.Is(err, ErrTranscription):
		return "transcription"
	case errors.Is(err, ErrSynthesis):
		return "synthesis"
	case errors.Is(err, ErrStorage):
		return "storage"
	}
	return "internal"
}
