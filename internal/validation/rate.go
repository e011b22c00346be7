package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// EmailPattern определяет допустимый формат email: local-part@domain.tld
var EmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Паттерны посимвольной фильтрации ввода в формах.
// Проверяют промежуточное состояние поля, а не финальное значение:
// "12." — допустимый ввод тарифа, но не допустимое значение.
var (
	// DigitsPattern разрешает только цифры (поле ID операции, поиск)
	DigitsPattern = regexp.MustCompile(`^\d+$`)
	// DecimalPattern разрешает цифры и не больше одной точки
	DecimalPattern = regexp.MustCompile(`^\d*\.?\d*$`)
	// TwoDecimalPattern дополнительно ограничивает дробную часть двумя знаками
	TwoDecimalPattern = regexp.MustCompile(`^\d*\.?\d{0,2}$`)
)

// ValidateEmail проверяет формат email перед отправкой на сервер
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if !EmailPattern.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidateOperationID проверяет, что ID операции положительное целое
func ValidateOperationID(idOp int) error {
	if idOp <= 0 {
		return fmt.Errorf("operation ID must be a positive integer")
	}
	return nil
}

// ValidateRate проверяет, что тариф конечное неотрицательное число
func ValidateRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("rate must be a valid number")
	}
	if rate < 0 {
		return fmt.Errorf("rate must be a non-negative number")
	}
	return nil
}

// ParseOperationID парсит строку из формы в ID операции
func ParseOperationID(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("operation ID cannot be empty")
	}
	idOp, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("operation ID must be an integer")
	}
	if err := ValidateOperationID(idOp); err != nil {
		return 0, err
	}
	return idOp, nil
}

// ParseRate парсит строку из формы в значение тарифа
func ParseRate(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "." {
		return 0, fmt.Errorf("rate cannot be empty")
	}
	rate, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("rate must be a number")
	}
	if err := ValidateRate(rate); err != nil {
		return 0, err
	}
	return rate, nil
}

// IsNumericTerm проверяет, что строка поиска состоит только из цифр.
// Пустая строка допустима и означает отсутствие фильтра.
func IsNumericTerm(term string) bool {
	return term == "" || DigitsPattern.MatchString(term)
}

// FormatRate форматирует тариф ровно с двумя знаками после точки
func FormatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 2, 64)
}
