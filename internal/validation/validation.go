// Package validation holds the pure input checks applied before anything
// reaches the database: digit normalization for CPF/CEP, UF uppercasing,
// positive monetary values and string length bounds. Every failure names the
// offending field so the API can return actionable messages.
package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"juntos-mais-api/internal/apperrors"
)

// Digits strips every non-digit rune from s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CPF normalizes a CPF ("123.456.789-01" -> "12345678901") and requires
// exactly 11 digits.
func CPF(field, value string) (string, *apperrors.FieldError) {
	digits := Digits(value)
	if len(digits) != 11 {
		return "", &apperrors.FieldError{Field: field, Reason: "CPF deve conter 11 dígitos"}
	}
	return digits, nil
}

// CEP normalizes a postal code and requires exactly 8 digits.
func CEP(field, value string) (string, *apperrors.FieldError) {
	digits := Digits(value)
	if len(digits) != 8 {
		return "", &apperrors.FieldError{Field: field, Reason: "CEP deve conter 8 dígitos"}
	}
	return digits, nil
}

// UF uppercases a state code and requires exactly 2 letters.
func UF(field, value string) (string, *apperrors.FieldError) {
	upper := strings.ToUpper(strings.TrimSpace(value))
	if utf8.RuneCountInString(upper) != 2 {
		return "", &apperrors.FieldError{Field: field, Reason: "UF deve conter 2 letras"}
	}
	for _, r := range upper {
		if !unicode.IsLetter(r) {
			return "", &apperrors.FieldError{Field: field, Reason: "UF deve conter 2 letras"}
		}
	}
	return upper, nil
}

// Positive rejects non-positive monetary values. They are never clamped.
func Positive(field string, value float64) *apperrors.FieldError {
	if value <= 0 {
		return &apperrors.FieldError{Field: field, Reason: "Valor deve ser maior que zero"}
	}
	return nil
}

// Length enforces inclusive rune-count bounds. A max of 0 means unbounded.
func Length(field, value string, min, max int) *apperrors.FieldError {
	n := utf8.RuneCountInString(value)
	if n < min {
		return &apperrors.FieldError{Field: field, Reason: fmt.Sprintf("Deve conter no mínimo %d caracteres", min)}
	}
	if max > 0 && n > max {
		return &apperrors.FieldError{Field: field, Reason: fmt.Sprintf("Deve conter no máximo %d caracteres", max)}
	}
	return nil
}
