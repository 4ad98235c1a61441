package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// Candidate запись кандидата с разобранным резюме, ключ - email
type Candidate struct {
	Email     string     `gorm:"primaryKey;type:varchar(255)" json:"email"`
	Name      string     `gorm:"type:varchar(255)" json:"name"`
	Phone     string     `gorm:"type:varchar(50);not null" json:"phone"`
	Position  string     `gorm:"type:varchar(255)" json:"position"`
	RawText   string     `gorm:"type:text" json:"raw_text"`
	FullData  ResumeData `gorm:"type:jsonb" json:"full_data"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Candidate) TableName() string {
	return "resumes"
}

func (c Candidate) GetContactInfo() ContactInfo {
	return c.FullData.ContactInfo
}

type ContactInfo struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Position    string `json:"position"`
	ProcessedBy string `json:"processed_by,omitempty"`
}

// ResumeData полные данные резюме: контакты, результат разбора ИИ и исходный текст
type ResumeData struct {
	ContactInfo  ContactInfo     `json:"contact_info"`
	ParsedResume json.RawMessage `json:"parsed_resume"`
	RawText      string          `json:"raw_text"`
}

func (j ResumeData) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *ResumeData) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	case nil:
		return nil
	default:
		return errors.Errorf("неподдерживаемый тип данных для full_data: %T", value)
	}
	if err := json.Unmarshal(data, j); err != nil {
		return err
	}
	return nil
}

type CandidateFilter struct {
	Search   string
	Position string
	Page     int
	Limit    int
}

// Skills список навыков из разобранного резюме, если модель вернула объект с полем skills
func (j ResumeData) Skills() []string {
	if len(j.ParsedResume) == 0 {
		return nil
	}
	parsed := struct {
		Skills []string `json:"skills"`
	}{}
	if err := json.Unmarshal(j.ParsedResume, &parsed); err != nil {
		return nil
	}
	return parsed.Skills
}
