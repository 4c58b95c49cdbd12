// auth.go — сервис аутентификации портала.
// Делегирует проверку учётных данных backend, строит сессию и решает,
// куда направить пользователя после входа. Портал входа (admin/user)
// должен соответствовать роли: администраторы не входят через
// пользовательскую форму и наоборот.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bigkaa/fileportal/portal-module/internal/backend"
	"github.com/bigkaa/fileportal/portal-module/internal/domain/authflow"
	"github.com/bigkaa/fileportal/portal-module/internal/domain/rbac"
	"github.com/bigkaa/fileportal/portal-module/internal/session"
)

// Порталы входа.
const (
	// PortalAdmin — форма входа администраторов и внутренних пользователей
	PortalAdmin = "admin"
	// PortalUser — форма входа внешних и стандартных пользователей
	PortalUser = "user"
)

// Сообщения для пользователя. Отдаются клиенту как есть.
const (
	msgInvalidCredentials = "Invalid username or password"
	msgServerError        = "Server error. Please try again later."
	msgLoginSuccess       = "Login successful! Redirecting..."
)

// redirectDelayMillis — пауза перед переходом на landing-страницу:
// пользователь успевает увидеть подтверждение входа.
const redirectDelayMillis = 650

// sessionTTL — время жизни сессии.
const sessionTTL = 24 * time.Hour

// AuthService — сервис аутентификации.
type AuthService struct {
	client *backend.Client
	logger *slog.Logger
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(client *backend.Client, logger *slog.Logger) *AuthService {
	return &AuthService{
		client: client,
		logger: logger.With(slog.String("component", "auth_service")),
	}
}

// LoginOutcome — результат успешного входа.
type LoginOutcome struct {
	// Session — данные для установки session cookie
	Session *session.Data
	// RedirectTo — landing-маршрут роли
	RedirectTo string
	// RedirectDelayMillis — пауза перед переходом (мс)
	RedirectDelayMillis int
	// Message — подтверждение для пользователя
	Message string
}

// LoginError — отказ входа с сообщением для пользователя.
type LoginError struct {
	// Message — текст для отображения на форме
	Message string
	// Err — исходная ошибка (для логов)
	Err error
}

// Error реализует error.
func (e *LoginError) Error() string {
	return fmt.Sprintf("отказ входа: %s: %v", e.Message, e.Err)
}

// Unwrap возвращает исходную ошибку.
func (e *LoginError) Unwrap() error {
	return e.Err
}

// Login выполняет вход пользователя через указанный портал.
// portal — PortalAdmin или PortalUser; роль пользователя должна
// соответствовать порталу, иначе вход отклоняется без раскрытия
// причины (то же сообщение, что и при неверном пароле).
func (s *AuthService) Login(ctx context.Context, portal, username, password string) (*LoginOutcome, error) {
	flow := authflow.NewLoginFlow()
	if err := flow.Submit(); err != nil {
		return nil, err
	}

	if username == "" || password == "" {
		_ = flow.Fail(msgInvalidCredentials)
		return nil, &LoginError{Message: msgInvalidCredentials, Err: ErrValidation}
	}

	result, err := s.client.Authenticate(ctx, backend.Credentials{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, s.failLogin(flow, username, err)
	}

	if !rbac.IsValidRole(result.Role) || !portalMatchesRole(portal, result.Role) {
		s.logger.Warn("Вход через несоответствующий портал отклонён",
			slog.String("username", username),
			slog.String("portal", portal),
			slog.String("role", result.Role),
		)
		_ = flow.Fail(msgInvalidCredentials)
		return nil, &LoginError{Message: msgInvalidCredentials, Err: ErrInvalidCredentials}
	}

	if err := flow.Succeed(); err != nil {
		return nil, err
	}

	s.logger.Info("Пользователь вошёл в портал",
		slog.String("username", result.Username),
		slog.String("role", result.Role),
		slog.Int64("user_id", result.UserID),
	)

	return &LoginOutcome{
		Session: &session.Data{
			Token:     result.Token,
			UserID:    result.UserID,
			Username:  result.Username,
			Email:     result.Email,
			Role:      result.Role,
			CompanyID: result.CompanyID,
			ExpiresAt: time.Now().Add(sessionTTL).Unix(),
		},
		RedirectTo:          rbac.LandingRoute(result.Role),
		RedirectDelayMillis: redirectDelayMillis,
		Message:             msgLoginSuccess,
	}, nil
}

// failLogin переводит автомат в error и строит LoginError по причине отказа.
func (s *AuthService) failLogin(flow *authflow.LoginFlow, username string, err error) error {
	if apiErr, ok := backend.AsAPIError(err); ok && apiErr.StatusCode < 500 {
		// Неверные учётные данные — единое сообщение, без деталей
		if apiErr.StatusCode == http.StatusUnauthorized || apiErr.Code == "INVALID_CREDENTIALS" {
			s.logger.Info("Вход отклонён backend",
				slog.String("username", username),
				slog.String("code", apiErr.Code),
			)
			_ = flow.Fail(msgInvalidCredentials)
			return &LoginError{Message: msgInvalidCredentials, Err: ErrInvalidCredentials}
		}

		// Прочие 4xx (блокировка учётной записи, rate limit) — сообщение
		// backend полезно пользователю и отдаётся как есть
		msg := apiErr.Message
		if msg == "" {
			msg = msgInvalidCredentials
		}
		s.logger.Warn("Вход отклонён backend",
			slog.String("username", username),
			slog.String("code", apiErr.Code),
			slog.Int("status", apiErr.StatusCode),
		)
		_ = flow.Fail(msg)
		return &LoginError{Message: msg, Err: fmt.Errorf("%w: %s", ErrValidation, apiErr.Code)}
	}

	// Сетевая ошибка или 5xx backend
	s.logger.Error("Backend недоступен при входе",
		slog.String("username", username),
		slog.String("error", err.Error()),
	)
	_ = flow.Fail(msgServerError)
	return &LoginError{Message: msgServerError, Err: fmt.Errorf("%w: %w", ErrBackendUnavailable, err)}
}

// portalMatchesRole проверяет соответствие портала входа роли.
func portalMatchesRole(portal, role string) bool {
	switch portal {
	case PortalAdmin:
		return role == rbac.RoleAdmin || role == rbac.RoleInternalUser
	case PortalUser:
		return role == rbac.RoleExternalUser || role == rbac.RoleStandardUser
	default:
		return false
	}
}

// MapBackendError переводит ошибку backend в сервисную.
// 401 — сессия отклонена (клиент должен сбросить cookie),
// сетевые ошибки и 5xx — backend недоступен.
func MapBackendError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, backend.ErrUnauthorized) {
		return fmt.Errorf("%w: %w", ErrSessionRejected, err)
	}
	if apiErr, ok := backend.AsAPIError(err); ok {
		switch {
		case apiErr.StatusCode == 404:
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		case apiErr.StatusCode == 409:
			return fmt.Errorf("%w: %s", ErrConflict, apiErr.Message)
		case apiErr.StatusCode >= 500:
			return fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
		case apiErr.StatusCode >= 400:
			return fmt.Errorf("%w: %s", ErrValidation, apiErr.Message)
		}
	}
	return fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
}
