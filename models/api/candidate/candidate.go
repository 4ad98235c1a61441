package candidateapimodels

import (
	"encoding/json"

	apimodels "ai-interviewer-backend/models/api"
	dbmodels "ai-interviewer-backend/models/db"
)

type CandidateView struct {
	Name         string               `json:"name"`          // ФИО
	Email        string               `json:"email"`         // Емайл (ключ записи)
	Phone        string               `json:"phone"`         // Телефон
	Position     string               `json:"position"`      // Должность
	ContactInfo  dbmodels.ContactInfo `json:"contact_info"`  // Контакты, указанные при загрузке
	ParsedResume json.RawMessage      `json:"parsed_resume"` // Результат разбора резюме (объект или строка)
	CreatedAt    string               `json:"created_at"`    // Дата создания ДД.ММ.ГГГГ ЧЧ:ММ
	UpdatedAt    string               `json:"updated_at"`    // Дата обновления ДД.ММ.ГГГГ ЧЧ:ММ
}

type CandidateViewExt struct {
	CandidateView
	RawText string `json:"raw_text"` // Текст резюме после обработки
}

func CandidateConvert(rec dbmodels.Candidate) CandidateView {
	return CandidateView{
		Name:         rec.Name,
		Email:        rec.Email,
		Phone:        rec.Phone,
		Position:     rec.Position,
		ContactInfo:  rec.GetContactInfo(),
		ParsedResume: rec.FullData.ParsedResume,
		CreatedAt:    rec.CreatedAt.Format("02.01.2006 15:04"),
		UpdatedAt:    rec.UpdatedAt.Format("02.01.2006 15:04"),
	}
}

func CandidateConvertExt(rec dbmodels.Candidate) CandidateViewExt {
	return CandidateViewExt{
		CandidateView: CandidateConvert(rec),
		RawText:       rec.RawText,
	}
}

type CandidateFilter struct {
	apimodels.Pagination
	Search   string `json:"search"`   // Поиск по ФИО, емайл, телефону
	Position string `json:"position"` // Должность
}

func (f CandidateFilter) Validate() error {
	return f.Pagination.Validate()
}

func (f CandidateFilter) ToDb() dbmodels.CandidateFilter {
	page, limit := f.GetPage()
	return dbmodels.CandidateFilter{
		Search:   f.Search,
		Position: f.Position,
		Page:     page,
		Limit:    limit,
	}
}
