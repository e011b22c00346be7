package api

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Username string `json:"username"` // имя пользователя
	Password string `json:"password"` // пароль
}

// TokenResponse представляет ответ с токеном доступа
type TokenResponse struct {
	AccessToken string `json:"access_token"` // JWT access token
}

// ErrorResponse представляет ответ с ошибкой
// Поле detail содержит человекочитаемое описание, которое клиент
// показывает пользователю без изменений
type ErrorResponse struct {
	Error  string `json:"error"`            // статус ошибки
	Detail string `json:"detail,omitempty"` // описание ошибки
}
