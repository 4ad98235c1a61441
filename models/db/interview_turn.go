package dbmodels

// InterviewTurn вопрос интервью и распознанный ответ кандидата
type InterviewTurn struct {
	BaseModel
	SessionID      string `gorm:"type:varchar(36);index" comment:"Идентификатор сессии"`
	CandidateEmail string `gorm:"type:varchar(255);index" comment:"Email кандидата"`
	QuestionIndex  int    `comment:"Номер вопроса"`
	Question       string `comment:"Текст вопроса"`
	Answer         string `comment:"Распознанный ответ на предыдущий вопрос"`
	AnswerFileKey  string `gorm:"type:varchar(512)" comment:"Ключ файла ответа в S3"`
}
