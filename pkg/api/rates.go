package api

import "strings"

// Rate представляет одну запись тарифа
type Rate struct {
	IDOp  int     `json:"idOp"`  // идентификатор операции, положительное целое
	Tasa  float64 `json:"tasa"`  // значение тарифа, неотрицательное
	Email string  `json:"email"` // контактный email
}

// CreateRateRequest представляет запрос на создание записи
type CreateRateRequest struct {
	IDOp  int     `json:"idOp"`
	Tasa  float64 `json:"tasa"`
	Email string  `json:"email"`
}

// UpdateRateRequest представляет запрос на изменение тарифа
// Email пересылается без изменений, отдельно не редактируется
type UpdateRateRequest struct {
	Tasa  float64 `json:"tasa"`
	Email string  `json:"email"`
}

// UpdateRateResponse представляет ответ сервера на изменение тарифа
type UpdateRateResponse struct {
	Message string `json:"message,omitempty"`
}

// MessageResponse представляет ответ с подтверждением операции
type MessageResponse struct {
	Message string `json:"message"`
}

// Доменные маркеры в сообщениях сервера. Сервер и клиент используют
// одни и те же константы, распознавание по подстроке собрано здесь
// и больше нигде не дублируется.
const (
	// MsgNoRatesFound возвращается в detail при пустом списке тарифов
	MsgNoRatesFound = "no rates found"
	// MsgRateUnchanged возвращается в message, когда новое значение
	// тарифа совпадает с сохраненным
	MsgRateUnchanged = "rate is unchanged"
)

// IsNoRatesFound сообщает, что detail ошибки означает пустой список,
// а не сбой
func IsNoRatesFound(detail string) bool {
	return strings.Contains(detail, MsgNoRatesFound)
}

// IsRateUnchanged сообщает, что ответ на изменение означает
// совпадение со старым значением
func IsRateUnchanged(message string) bool {
	return strings.Contains(message, MsgRateUnchanged)
}
