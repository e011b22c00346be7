package forms

import (
	"context"
	"fmt"
	"strings"

	"rateadmin/internal/client/rates"
	"rateadmin/internal/validation"
)

// CreateForm собирает ввод для новой записи тарифа. Форма не владеет
// состоянием списка: проверив поля, она делегирует движку и блокирует
// повторную отправку, пока вызов не завершится.
type CreateForm struct {
	engine *rates.Engine

	operationID string
	rate        string
	email       string
	submitting  bool
}

// NewCreateForm создает форму добавления записи
func NewCreateForm(engine *rates.Engine) *CreateForm {
	return &CreateForm{engine: engine}
}

// SetOperationID применяет посимвольный фильтр к полю ID операции
func (f *CreateForm) SetOperationID(input string) {
	f.operationID = FilterOperationIDInput(f.operationID, input)
}

// SetRate применяет посимвольный фильтр к полю тарифа
func (f *CreateForm) SetRate(input string) {
	f.rate = FilterRateInput(f.rate, input)
}

// SetEmail принимает email как есть, формат проверяется при отправке
func (f *CreateForm) SetEmail(input string) {
	f.email = input
}

// OperationID возвращает текущее значение поля ID операции
func (f *CreateForm) OperationID() string { return f.operationID }

// Rate возвращает текущее значение поля тарифа
func (f *CreateForm) Rate() string { return f.rate }

// Email возвращает текущее значение поля email
func (f *CreateForm) Email() string { return f.email }

// Submitting сообщает, что отправка в процессе и управление заблокировано
func (f *CreateForm) Submitting() bool { return f.submitting }

// Reset очищает поля после успешной отправки или закрытия формы
func (f *CreateForm) Reset() {
	f.operationID = ""
	f.rate = ""
	f.email = ""
}

// Submit выполняет собственную проверку полей и вызывает движок.
// Флаг отправки снимается в любом исходе.
func (f *CreateForm) Submit(ctx context.Context) error {
	if f.submitting {
		return fmt.Errorf("submission already in progress")
	}

	if err := validation.ValidateEmail(f.email); err != nil {
		return err
	}
	rate, err := validation.ParseRate(f.rate)
	if err != nil {
		return err
	}
	idOp, err := validation.ParseOperationID(f.operationID)
	if err != nil {
		return err
	}

	f.submitting = true
	defer func() { f.submitting = false }()

	if err := f.engine.Create(ctx, idOp, rate, strings.TrimSpace(f.email)); err != nil {
		return err
	}

	f.Reset()
	return nil
}
