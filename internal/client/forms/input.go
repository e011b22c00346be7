package forms

import (
	"strconv"

	"rateadmin/internal/validation"
)

// Посимвольные фильтры ввода. Каждый получает предыдущее значение поля
// и кандидат после нажатия клавиши и возвращает то, что остается в поле:
// недопустимый ввод молча отбрасывается, как в исходной форме.

// FilterOperationIDInput пропускает только цифры (ID операции, поиск)
func FilterOperationIDInput(prev, next string) string {
	if next == "" || validation.DigitsPattern.MatchString(next) {
		return next
	}
	return prev
}

// FilterRateInput пропускает цифры и не больше одной точки
func FilterRateInput(prev, next string) string {
	if next == "" || validation.DecimalPattern.MatchString(next) {
		return next
	}
	return prev
}

// FilterEditRateInput дополнительно ограничивает дробную часть двумя
// знаками; "." остается допустимым промежуточным состоянием
func FilterEditRateInput(prev, next string) string {
	if next == "" || next == "." {
		return next
	}
	if validation.TwoDecimalPattern.MatchString(next) {
		return next
	}
	return prev
}

// FormatRateOnBlur приводит введенный тариф ровно к двум знакам после
// точки при уходе фокуса. Непарсящийся ввод возвращается как есть,
// им займется валидация при отправке.
func FormatRateOnBlur(value string) string {
	if value == "" {
		return value
	}
	rate, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value
	}
	return validation.FormatRate(rate)
}
