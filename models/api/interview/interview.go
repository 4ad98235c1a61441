package interviewapimodels

import (
	"encoding/json"

	"ai-interviewer-backend/lib/utils/helpers"
	"ai-interviewer-backend/models"
	dbmodels "ai-interviewer-backend/models/db"

	"github.com/pkg/errors"
)

type SessionCreated struct {
	SessionID string `json:"session_id"` // Идентификатор сессии
	Token     string `json:"token"`      // Токен сессии для заголовка Authorization: Bearer
}

// SessionView состояние сессии интервью для клиента
type SessionView struct {
	SessionID       string                `json:"session_id"`                // Идентификатор сессии
	State           models.SessionState   `json:"state"`                     // Idle | ProfileLoaded | AwaitingAnswer
	Candidate       *dbmodels.ContactInfo `json:"candidate,omitempty"`       // Кандидат, резюме которого загружено
	ParsedResume    json.RawMessage       `json:"parsed_resume,omitempty"`   // Результат разбора резюме
	CurrentQuestion string                `json:"current_question"`          // Текущий вопрос
	QuestionIndex   int                   `json:"question_index"`            // Номер текущего вопроса, 0 - вопросов еще не было
	AwaitingAnswer  bool                  `json:"awaiting_answer"`           // Ожидается ответ на текущий вопрос
	LastTranscript  string                `json:"last_transcript,omitempty"` // Распознанный ответ на предыдущий вопрос
	PlayAudio       bool                  `json:"play_audio"`                // Клиенту нужно воспроизвести текущий вопрос
	Message         string                `json:"message,omitempty"`         // Сообщение о результате операции
}

type ContactData struct {
	Name     string `json:"name"`     // ФИО
	Email    string `json:"email"`    // Емайл
	Phone    string `json:"phone"`    // Телефон
	Position string `json:"position"` // Должность
}

func (c ContactData) Validate() error {
	if c.Name == "" {
		return errors.New("не указано имя кандидата")
	}
	if c.Email == "" {
		return errors.New("не указан email кандидата")
	}
	if !helpers.IsValidEmail(helpers.NormalizeEmail(c.Email)) {
		return errors.New("некорректный email кандидата")
	}
	if c.Phone == "" {
		return errors.New("не указан телефон кандидата")
	}
	return nil
}

func (c ContactData) ToContactInfo(processedBy string) dbmodels.ContactInfo {
	return dbmodels.ContactInfo{
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		Position:    c.Position,
		ProcessedBy: processedBy,
	}
}

type LookupRequest struct {
	Email string `json:"email"` // Емайл кандидата
}

func (r LookupRequest) Validate() error {
	if r.Email == "" {
		return errors.New("не указан email кандидата")
	}
	return nil
}

type FinishRequest struct {
	NotifyEmail string `json:"notify_email"` // Куда отправить отчет (по умолчанию из настроек)
}

func (r FinishRequest) Validate() error {
	if r.NotifyEmail != "" && !helpers.IsValidEmail(r.NotifyEmail) {
		return errors.New("некорректный email для отчета")
	}
	return nil
}
