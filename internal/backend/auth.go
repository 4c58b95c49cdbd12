// auth.go — операции аутентификации и активации учётной записи.
package backend

import (
	"context"
	"net/http"
	"net/url"
)

// Credentials — учётные данные для логина.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult — ответ backend на успешный логин.
type LoginResult struct {
	// Token — bearer-токен для последующих запросов
	Token string `json:"token"`
	// UserID — идентификатор пользователя
	UserID int64 `json:"userId"`
	// Username — логин
	Username string `json:"username"`
	// Email — email пользователя
	Email string `json:"email"`
	// Role — роль пользователя
	Role string `json:"role"`
	// CompanyID — компания пользователя (0 для администраторов)
	CompanyID int64 `json:"companyId"`
}

// Authenticate выполняет логин пользователя.
// POST /auth/login — публичный endpoint.
// 401 от backend означает неверные учётные данные, а не истёкшую
// сессию, поэтому здесь он НЕ превращается в ErrUnauthorized.
func (c *Client) Authenticate(ctx context.Context, creds Credentials) (*LoginResult, error) {
	resp, err := c.do(ctx, http.MethodPost, "/auth/login", creds)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       "INVALID_CREDENTIALS",
			Message:    "неверные учётные данные",
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errorFromResponse(resp)
	}

	var result LoginResult
	if err := decodeJSONBody(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ActivationStatus — результат валидации активационного токена.
type ActivationStatus struct {
	// Valid — токен действителен
	Valid bool `json:"valid"`
	// Username — логин активируемого пользователя (для отображения)
	Username string `json:"username,omitempty"`
	// Message — причина отклонения токена
	Message string `json:"message,omitempty"`
}

// ValidateActivationToken проверяет активационный токен из ссылки.
// GET /api/activation/validate?token=... — публичный endpoint.
// Отклонённый токен — не ошибка транспорта: возвращается статус Valid=false.
func (c *Client) ValidateActivationToken(ctx context.Context, token string) (*ActivationStatus, error) {
	path := "/api/activation/validate?token=" + url.QueryEscape(token)

	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Backend отвечает 400 на невалидный/истёкший токен
	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound {
		return &ActivationStatus{Valid: false}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errorFromResponse(resp)
	}

	var status ActivationStatus
	if err := decodeJSONBody(resp, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// setPasswordRequest — тело запроса установки пароля.
type setPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// SetActivationPassword устанавливает пароль по активационному токену.
// POST /api/activation/set-password — публичный endpoint.
func (c *Client) SetActivationPassword(ctx context.Context, token, password string) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/activation/set-password", setPasswordRequest{
		Token:    token,
		Password: password,
	})
	if err != nil {
		return err
	}

	return decodeResponse(resp, nil)
}
