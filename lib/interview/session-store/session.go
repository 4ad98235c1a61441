package sessionstore

import (
	"encoding/json"
	"time"

	"ai-interviewer-backend/lib/utils/helpers"
	"ai-interviewer-backend/models"
	dbmodels "ai-interviewer-backend/models/db"
)

// Session состояние сессии интервью. Хранится целиком, меняется только после успешной операции.
type Session struct {
	ID              string                `json:"id"`
	State           models.SessionState   `json:"state"`
	Profile         *dbmodels.ContactInfo `json:"profile,omitempty"`
	ParsedResume    json.RawMessage       `json:"parsed_resume,omitempty"`
	CurrentQuestion string                `json:"current_question,omitempty"`
	QuestionIndex   int                   `json:"question_index"`
	AwaitingAnswer  bool                  `json:"awaiting_answer"`
	LastTranscript  string                `json:"last_transcript,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

func NewSession(id string) Session {
	now := time.Now()
	return Session{
		ID:        id,
		State:     models.SessionStateIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// LoadProfile заменяет профиль кандидата, интервью начинается заново
func (s *Session) LoadProfile(contact dbmodels.ContactInfo, parsedResume json.RawMessage) {
	s.Profile = &contact
	s.ParsedResume = parsedResume
	s.State = models.SessionStateProfileLoaded
	s.CurrentQuestion = ""
	s.QuestionIndex = 0
	s.AwaitingAnswer = false
	s.LastTranscript = ""
}

// AskQuestion фиксирует новый текущий вопрос
func (s *Session) AskQuestion(question, transcript string) {
	s.CurrentQuestion = question
	s.QuestionIndex++
	s.AwaitingAnswer = true
	s.LastTranscript = transcript
	s.State = models.SessionStateAwaitingAnswer
}

func (s *Session) Reset() {
	s.Profile = nil
	s.ParsedResume = nil
	s.State = models.SessionStateIdle
	s.CurrentQuestion = ""
	s.QuestionIndex = 0
	s.AwaitingAnswer = false
	s.LastTranscript = ""
}

func (s Session) GetEmail() string {
	if s.Profile == nil {
		return ""
	}
	return helpers.NormalizeEmail(s.Profile.Email)
}
