package forms

import (
	"context"
	"fmt"

	"rateadmin/internal/client/rates"
	"rateadmin/internal/validation"
	"rateadmin/pkg/api"
)

// EditForm собирает ввод для изменения тарифа существующей записи.
// ID операции фиксирован, email пересылается без изменений, редактируется
// только значение тарифа.
type EditForm struct {
	engine *rates.Engine

	idOp       int
	email      string
	rate       string
	submitting bool
}

// NewEditForm создает форму редактирования поверх существующей записи.
// Поле тарифа предзаполняется текущим значением с двумя знаками.
func NewEditForm(engine *rates.Engine, record api.Rate) *EditForm {
	return &EditForm{
		engine: engine,
		idOp:   record.IDOp,
		email:  record.Email,
		rate:   validation.FormatRate(record.Tasa),
	}
}

// OperationID возвращает фиксированный ID операции
func (f *EditForm) OperationID() int { return f.idOp }

// Email возвращает email записи, наружу не редактируется
func (f *EditForm) Email() string { return f.email }

// Rate возвращает текущее значение поля тарифа
func (f *EditForm) Rate() string { return f.rate }

// Submitting сообщает, что отправка в процессе
func (f *EditForm) Submitting() bool { return f.submitting }

// SetRate применяет посимвольный фильтр с ограничением в два знака
// после точки
func (f *EditForm) SetRate(input string) {
	f.rate = FilterEditRateInput(f.rate, input)
}

// Blur приводит поле тарифа ровно к двум знакам после точки
func (f *EditForm) Blur() {
	f.rate = FormatRateOnBlur(f.rate)
}

// Submit проверяет поле тарифа и вызывает движок.
// Флаг отправки снимается в любом исходе.
func (f *EditForm) Submit(ctx context.Context) error {
	if f.submitting {
		return fmt.Errorf("submission already in progress")
	}

	rate, err := validation.ParseRate(f.rate)
	if err != nil {
		return err
	}

	f.submitting = true
	defer func() { f.submitting = false }()

	return f.engine.Update(ctx, f.idOp, rate, f.email)
}
