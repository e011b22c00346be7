package rates

// Severity определяет уровень уведомления
type Severity int

const (
	// SeverityInfo информационное уведомление (валидация, "без изменений")
	SeverityInfo Severity = iota
	// SeveritySuccess подтверждение успешной операции
	SeveritySuccess
	// SeverityError ошибка операции
	SeverityError
)

// Notice представляет транзитное уведомление для пользователя.
// Слой представления показывает его и гасит через фиксированные 3 секунды,
// движок таймерами не владеет.
type Notice struct {
	Message  string
	Severity Severity
}

// NotifyFunc принимает уведомления движка
type NotifyFunc func(Notice)

// Фиксированные fallback тексты, когда сервер не вернул detail
const (
	fallbackLoadFailed   = "failed to load rates"
	fallbackCreateFailed = "failed to create rate"
	fallbackUpdateFailed = "failed to update rate"
	fallbackDeleteFailed = "failed to delete rate"
)
