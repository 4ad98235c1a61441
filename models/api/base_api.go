package apimodels

// Response общий формат ответа API
type Response struct {
	Status    string      `json:"status"`               // fail | success
	Message   string      `json:"message,omitempty"`    // сообщение ошибки
	ErrorKind string      `json:"error_kind,omitempty"` // код ошибки: busy, invalid_state, extraction, parsing...
	Data      interface{} `json:"data,omitempty"`       // данные ответа
}

// ScrollerResponse ответ со списком, RowCount - всего записей по фильтру
type ScrollerResponse struct {
	Response
	RowCount int64 `json:"row_count,omitempty"`
}

const (
	statusSuccess = "success"
	statusFail    = "fail"
)

func NewError(message string) Response {
	return Response{
		Status:  statusFail,
		Message: message,
	}
}

func NewErrorWithKind(message, kind string) Response {
	resp := NewError(message)
	resp.ErrorKind = kind
	return resp
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: statusSuccess,
		Data:   data,
	}
}

func NewScrollerResponse(data interface{}, rowCount int64) ScrollerResponse {
	return ScrollerResponse{
		Response: NewResponse(data),
		RowCount: rowCount,
	}
}

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type Pagination struct {
	Limit int `json:"limit"` // Записей на странице, не больше 100
	Page  int `json:"page"`  // Страница (1,2,3..)
}

func (r Pagination) Validate() error {
	return nil
}

// GetPage страница и размер страницы со значениями по умолчанию
func (r Pagination) GetPage() (page, limit int) {
	page, limit = 1, defaultPageLimit
	if r.Page > 0 {
		page = r.Page
	}
	if r.Limit > 0 {
		limit = min(r.Limit, maxPageLimit)
	}
	return page, limit
}
