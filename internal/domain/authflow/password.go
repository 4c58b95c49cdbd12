// password.go — локальная валидация пароля при активации.
// Ошибки валидации не покидают portal-module: backend вызывается
// только после прохождения всех проверок.
package authflow

import (
	"errors"
	"strings"
	"unicode"
)

// passwordSymbols — допустимый набор спецсимволов пароля.
const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

// Минимальная длина пароля.
const passwordMinLength = 8

// Ошибки валидации пароля. Сообщения показываются пользователю как есть.
var (
	ErrPasswordRequired  = errors.New("Please fill in all fields")
	ErrPasswordTooShort  = errors.New("Password must be at least 8 characters long")
	ErrPasswordCase      = errors.New("Password must contain both uppercase and lowercase letters")
	ErrPasswordNoDigit   = errors.New("Password must contain at least one number")
	ErrPasswordNoSymbol  = errors.New("Password must contain at least one special character")
	ErrPasswordsMismatch = errors.New("Passwords do not match")
)

// IsPasswordError сообщает, является ли ошибка ошибкой валидации пароля.
// Обработчики отдают такие ошибки пользователю как есть.
func IsPasswordError(err error) bool {
	for _, target := range []error{
		ErrPasswordRequired,
		ErrPasswordTooShort,
		ErrPasswordCase,
		ErrPasswordNoDigit,
		ErrPasswordNoSymbol,
		ErrPasswordsMismatch,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ValidatePassword проверяет пару пароль/подтверждение по правилам портала:
// длина ≥ 8, минимум одна заглавная и одна строчная буква, одна цифра,
// один спецсимвол из фиксированного набора, совпадение с подтверждением.
// Возвращает первую нарушенную проверку.
func ValidatePassword(password, confirm string) error {
	if password == "" || confirm == "" {
		return ErrPasswordRequired
	}
	if len(password) < passwordMinLength {
		return ErrPasswordTooShort
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	if !hasUpper || !hasLower {
		return ErrPasswordCase
	}
	if !hasDigit {
		return ErrPasswordNoDigit
	}
	if !hasSymbol {
		return ErrPasswordNoSymbol
	}
	if password != confirm {
		return ErrPasswordsMismatch
	}

	return nil
}
