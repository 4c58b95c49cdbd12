// errors.go — ошибки бизнес-логики сервисного слоя.
package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound — ресурс не найден.
	ErrNotFound = errors.New("ресурс не найден")
	// ErrConflict — конфликт (дублирующийся ресурс).
	ErrConflict = errors.New("конфликт — ресурс уже существует")
	// ErrInvalidRole — некорректная роль.
	ErrInvalidRole = errors.New("некорректная роль: допустимые значения — ADMIN, INTERNAL_USER, EXTERNAL_USER, STANDARD_USER")
	// ErrBackendUnavailable — backend недоступен.
	ErrBackendUnavailable = errors.New("backend недоступен")
	// ErrValidation — ошибка валидации входных данных.
	ErrValidation = errors.New("ошибка валидации")
	// ErrInvalidCredentials — неверные учётные данные при логине.
	ErrInvalidCredentials = errors.New("неверные учётные данные")
	// ErrSessionRejected — backend отклонил токен сессии: сессию нужно сбросить.
	ErrSessionRejected = errors.New("сессия отклонена backend")
)

// PresignError — ошибка получения presigned URL для конкретного файла.
// Несёт имя файла: скачивание идёт per-file и отказ одного файла
// не должен выглядеть как отказ всей таблицы.
type PresignError struct {
	// FileName — имя файла, для которого не удалось получить URL
	FileName string
	// Err — исходная ошибка
	Err error
}

// Error реализует error.
func (e *PresignError) Error() string {
	return fmt.Sprintf("не удалось получить ссылку для файла %s: %v", e.FileName, e.Err)
}

// Unwrap возвращает исходную ошибку.
func (e *PresignError) Unwrap() error {
	return e.Err
}
