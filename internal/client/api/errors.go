package api

import (
	"errors"
	"fmt"
	"net/http"

	"rateadmin/pkg/api"
)

// Error представляет ошибку сервера с HTTP статусом и полем detail
type Error struct {
	Detail string // содержимое поля detail ответа, либо сырое тело
	Status int    // HTTP статус ответа
}

func (e *Error) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Detail)
}

// IsUnauthorized сообщает, что ошибка вызвана ответом 401
// и сессию следует завершить
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNoRatesFound сообщает, что ошибка списка означает пустое хранилище,
// а не сбой
func IsNoRatesFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && api.IsNoRatesFound(apiErr.Detail)
}

// ErrorDetail извлекает detail из ошибки сервера.
// Возвращает пустую строку для любых других ошибок, вызывающий код
// подставляет свой fallback текст.
func ErrorDetail(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}
