// activation.go — сервис активации учётной записи.
// Двухфазный поток: валидация токена из ссылки, затем установка пароля.
// Правила пароля проверяются локально — backend вызывается только
// с прошедшим валидацию паролем.
package service

import (
	"context"
	"log/slog"

	"github.com/bigkaa/fileportal/portal-module/internal/backend"
	"github.com/bigkaa/fileportal/portal-module/internal/domain/authflow"
)

// Сообщения активации для пользователя.
const (
	msgActivationInvalid = "Activation link is invalid or expired"
	msgActivationDone    = "Password set successfully! You can now log in."
	msgActivationFailed  = "Failed to set password. Please try again."
)

// ActivationService — сервис активации учётных записей.
type ActivationService struct {
	client *backend.Client
	logger *slog.Logger
}

// NewActivationService создаёт сервис активации.
func NewActivationService(client *backend.Client, logger *slog.Logger) *ActivationService {
	return &ActivationService{
		client: client,
		logger: logger.With(slog.String("component", "activation_service")),
	}
}

// ValidationOutcome — результат проверки активационного токена.
type ValidationOutcome struct {
	// Valid — токен действителен, можно устанавливать пароль
	Valid bool `json:"valid"`
	// Username — логин активируемого пользователя
	Username string `json:"username,omitempty"`
	// Message — сообщение для пользователя (при отказе)
	Message string `json:"message,omitempty"`
}

// ValidateToken проверяет активационный токен из ссылки.
// Недействительный токен — терминальный исход без повторных попыток.
func (s *ActivationService) ValidateToken(ctx context.Context, token string) (*ValidationOutcome, error) {
	flow := authflow.NewActivationFlow()

	if token == "" {
		_ = flow.MarkInvalid(msgActivationInvalid)
		return &ValidationOutcome{Valid: false, Message: msgActivationInvalid}, nil
	}

	status, err := s.client.ValidateActivationToken(ctx, token)
	if err != nil {
		s.logger.Error("Backend недоступен при валидации активации",
			slog.String("error", err.Error()),
		)
		return nil, MapBackendError(err)
	}

	if !status.Valid {
		_ = flow.MarkInvalid(msgActivationInvalid)
		s.logger.Info("Активационный токен отклонён")
		return &ValidationOutcome{Valid: false, Message: msgActivationInvalid}, nil
	}

	if err := flow.MarkValid(); err != nil {
		return nil, err
	}

	return &ValidationOutcome{Valid: true, Username: status.Username}, nil
}

// SetPasswordOutcome — результат установки пароля.
type SetPasswordOutcome struct {
	// Done — пароль установлен
	Done bool `json:"done"`
	// Message — сообщение для пользователя
	Message string `json:"message"`
	// RedirectTo — маршрут формы входа после успеха
	RedirectTo string `json:"redirectTo,omitempty"`
}

// SetPassword устанавливает пароль по активационному токену.
// Ошибка валидации пароля возвращается как есть — её сообщение
// предназначено пользователю и не уходит к backend.
func (s *ActivationService) SetPassword(ctx context.Context, token, password, confirm string) (*SetPasswordOutcome, error) {
	if err := authflow.ValidatePassword(password, confirm); err != nil {
		return nil, err
	}

	flow := authflow.NewActivationFlow()
	if err := flow.MarkValid(); err != nil {
		return nil, err
	}
	if err := flow.SubmitPassword(); err != nil {
		return nil, err
	}

	if err := s.client.SetActivationPassword(ctx, token, password); err != nil {
		_ = flow.FailPassword(msgActivationFailed)

		if apiErr, ok := backend.AsAPIError(err); ok && apiErr.StatusCode < 500 {
			// Backend отклонил токен между валидацией и установкой
			s.logger.Info("Установка пароля отклонена backend",
				slog.String("code", apiErr.Code),
			)
			return &SetPasswordOutcome{Done: false, Message: msgActivationFailed}, nil
		}

		s.logger.Error("Backend недоступен при установке пароля",
			slog.String("error", err.Error()),
		)
		return nil, MapBackendError(err)
	}

	if err := flow.Complete(); err != nil {
		return nil, err
	}

	s.logger.Info("Пароль по активационному токену установлен")

	return &SetPasswordOutcome{
		Done:       true,
		Message:    msgActivationDone,
		RedirectTo: "/login/user",
	}, nil
}
