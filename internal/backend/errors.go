// errors.go — ошибки клиента backend.
// Backend возвращает JSON {"code": "...", "message": "..."} при ошибках;
// APIError сохраняет статус и оба поля для маппинга в сервисном слое.
package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrUnauthorized — backend отклонил bearer-токен (401).
// Сервисный слой по этой ошибке сбрасывает сессию.
var ErrUnauthorized = errors.New("backend отклонил токен авторизации")

// APIError — структурированная ошибка backend REST API.
type APIError struct {
	// StatusCode — HTTP-статус ответа
	StatusCode int
	// Code — машинный код ошибки backend (INVALID_CREDENTIALS, ...)
	Code string
	// Message — человекочитаемое сообщение backend
	Message string
}

// Error реализует error.
func (e *APIError) Error() string {
	return fmt.Sprintf("backend вернул статус %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// apiErrorBody — тело ошибки backend.
type apiErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Error — альтернативное поле некоторых endpoints
	Error string `json:"error"`
}

// errorFromResponse строит ошибку из не-2xx ответа backend.
// 401 возвращается как ErrUnauthorized (обёрнутый в APIError через errors.Join
// не нужен — сервисному слою достаточно sentinel).
func errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: статус %d", ErrUnauthorized, resp.StatusCode)
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}

	var parsed apiErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		apiErr.Code = parsed.Code
		apiErr.Message = parsed.Message
		if apiErr.Message == "" {
			apiErr.Message = parsed.Error
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = string(body)
	}

	return apiErr
}

// AsAPIError извлекает APIError из цепочки ошибок.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
