package apimodels

import (
	"encoding/json"

	helpers "stroy-tools-backend/lib/utils/helpers"
)

type Response struct {
	Status  string      `json:"status"`            //результат обработки fail/success
	Message string      `json:"message,omitempty"` //сообщение ошибки
	Data    interface{} `json:"data,omitempty"`    //данные ответа
}

type ScrollerResponse struct {
	Response
	RowCount int64 `json:"row_count,omitempty"` //для списков, общее кол-во записей, учитывая фильтр (если он есть)
}

func NewError(message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

func NewScrollerResponse(data interface{}, rowCount int64) ScrollerResponse {
	return ScrollerResponse{
		Response: Response{
			Status: "success",
			Data:   data,
		},
		RowCount: rowCount,
	}
}

type Pagination struct {
	Limit int `json:"limit"` // Записей на странице
	Page  int `json:"page"`  // Страница (1,2,3..)
}

func (r Pagination) Validate() error {
	return nil
}

func (r Pagination) GetPage() (page, limit int) {
	page = 1
	limit = 10
	if r.Page > 0 {
		page = r.Page
	}
	if r.Limit > 0 {
		limit = r.Limit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// UnmarshalTolerant разбирает тело запроса, принимая ключи и в snake_case и в camelCase.
// Мобильные клиенты исторически шлют camelCase, веб - snake_case.
func UnmarshalTolerant(data []byte, out interface{}) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		// не объект - отдаём как есть
		return json.Unmarshal(data, out)
	}
	normalized := make(map[string]json.RawMessage, len(raw))
	for key, value := range raw {
		normalized[helpers.ToSnakeCase(key)] = value
	}
	merged, err := json.Marshal(normalized)
	if err != nil {
		return err
	}
	return json.Unmarshal(merged, out)
}
