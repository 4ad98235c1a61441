package wsmodels

// ServerMessage событие сессии интервью для клиента
type ServerMessage struct {
	ToSessionID   string `json:"-"`
	Time          string `json:"time"`                     // время события
	Code          string `json:"code"`                     // код события
	Msg           string `json:"msg,omitempty"`            // текст события
	QuestionIndex int    `json:"question_index,omitempty"` // номер текущего вопроса
	Question      string `json:"question,omitempty"`       // текст текущего вопроса
	Transcript    string `json:"transcript,omitempty"`     // распознанный ответ на предыдущий вопрос
	ErrorKind     string `json:"error_kind,omitempty"`     // код ошибки
}

// ClientMessage сообщение от клиента по websocket
type ClientMessage struct {
	Action string `json:"action"` // start | reset
}
