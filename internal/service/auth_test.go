package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/bigkaa/fileportal/portal-module/internal/backend"
	"github.com/bigkaa/fileportal/portal-module/internal/domain/rbac"
)

// testLogger создаёт logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// setupMockBackend создаёт mock HTTP-сервер backend и клиент к нему.
func setupMockBackend(t *testing.T, handler http.HandlerFunc) *backend.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := backend.New(server.URL, "", backend.SessionTokenProvider(), testLogger())
	if err != nil {
		t.Fatal(err)
	}
	return client
}

// loginBackend — mock backend с одним пользователем.
func loginBackend(t *testing.T, role string) *backend.Client {
	t.Helper()
	return setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		var creds backend.Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Username != "user1" || creds.Password != "Valid1Pass!" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(backend.LoginResult{
			Token:     "jwt",
			UserID:    7,
			Username:  "user1",
			Email:     "user1@example.com",
			Role:      role,
			CompanyID: 3,
		})
	})
}

// TestAuthService_Login_Success — успешный вход администратора.
func TestAuthService_Login_Success(t *testing.T) {
	svc := NewAuthService(loginBackend(t, rbac.RoleAdmin), testLogger())

	outcome, err := svc.Login(context.Background(), PortalAdmin, "user1", "Valid1Pass!")
	if err != nil {
		t.Fatalf("Ошибка Login: %v", err)
	}

	if outcome.Session.Token != "jwt" || outcome.Session.Role != rbac.RoleAdmin {
		t.Errorf("сессия = %+v", outcome.Session)
	}
	if outcome.Session.UserID != 7 || outcome.Session.CompanyID != 3 {
		t.Errorf("сессия = %+v", outcome.Session)
	}
	if outcome.RedirectTo != "/dashboard" {
		t.Errorf("RedirectTo = %q", outcome.RedirectTo)
	}
	if outcome.RedirectDelayMillis != 650 {
		t.Errorf("RedirectDelayMillis = %d", outcome.RedirectDelayMillis)
	}
	if outcome.Session.ExpiresAt == 0 {
		t.Error("ExpiresAt не установлен")
	}
}

// TestAuthService_Login_InvalidCredentials — неверный пароль.
func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc := NewAuthService(loginBackend(t, rbac.RoleAdmin), testLogger())

	_, err := svc.Login(context.Background(), PortalAdmin, "user1", "wrong")
	var loginErr *LoginError
	if !errors.As(err, &loginErr) {
		t.Fatalf("ожидался LoginError, получен %v", err)
	}
	if loginErr.Message != "Invalid username or password" {
		t.Errorf("Message = %q", loginErr.Message)
	}
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("ожидался ErrInvalidCredentials в цепочке: %v", err)
	}
}

// TestAuthService_Login_EmptyFields — пустые поля не уходят к backend.
func TestAuthService_Login_EmptyFields(t *testing.T) {
	client := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend не должен вызываться при пустых полях")
	})
	svc := NewAuthService(client, testLogger())

	_, err := svc.Login(context.Background(), PortalAdmin, "", "password")
	var loginErr *LoginError
	if !errors.As(err, &loginErr) {
		t.Fatalf("ожидался LoginError, получен %v", err)
	}
	if loginErr.Message != "Invalid username or password" {
		t.Errorf("Message = %q", loginErr.Message)
	}
}

// TestAuthService_Login_PortalMismatch — роль не соответствует порталу.
// Сообщение не раскрывает, что учётные данные были верны.
func TestAuthService_Login_PortalMismatch(t *testing.T) {
	tests := []struct {
		name   string
		portal string
		role   string
	}{
		{name: "администратор через пользовательскую форму", portal: PortalUser, role: rbac.RoleAdmin},
		{name: "внешний пользователь через форму администраторов", portal: PortalAdmin, role: rbac.RoleExternalUser},
		{name: "внутренний пользователь через пользовательскую форму", portal: PortalUser, role: rbac.RoleInternalUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(loginBackend(t, tt.role), testLogger())

			_, err := svc.Login(context.Background(), tt.portal, "user1", "Valid1Pass!")
			var loginErr *LoginError
			if !errors.As(err, &loginErr) {
				t.Fatalf("ожидался LoginError, получен %v", err)
			}
			if loginErr.Message != "Invalid username or password" {
				t.Errorf("Message = %q — не должен раскрывать причину", loginErr.Message)
			}
		})
	}
}

// TestAuthService_Login_PortalMatch — соответствие портала и ролей.
func TestAuthService_Login_PortalMatch(t *testing.T) {
	tests := []struct {
		portal string
		role   string
	}{
		{portal: PortalAdmin, role: rbac.RoleAdmin},
		{portal: PortalAdmin, role: rbac.RoleInternalUser},
		{portal: PortalUser, role: rbac.RoleExternalUser},
		{portal: PortalUser, role: rbac.RoleStandardUser},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			svc := NewAuthService(loginBackend(t, tt.role), testLogger())
			if _, err := svc.Login(context.Background(), tt.portal, "user1", "Valid1Pass!"); err != nil {
				t.Errorf("вход роли %s через портал %s отклонён: %v", tt.role, tt.portal, err)
			}
		})
	}
}

// TestAuthService_Login_BackendMessage — не связанный с учётными данными
// отказ (блокировка, rate limit) отдаёт пользователю сообщение backend;
// 401 по-прежнему сводится к единому сообщению.
func TestAuthService_Login_BackendMessage(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantMsg  string
		wantErr  error
	}{
		{
			name:    "заблокированная учётная запись",
			status:  http.StatusLocked,
			body:    `{"code":"ACCOUNT_LOCKED","message":"Account is locked. Contact your administrator."}`,
			wantMsg: "Account is locked. Contact your administrator.",
			wantErr: ErrValidation,
		},
		{
			name:    "rate limit",
			status:  http.StatusTooManyRequests,
			body:    `{"code":"TOO_MANY_ATTEMPTS","message":"Too many login attempts. Try again in a minute."}`,
			wantMsg: "Too many login attempts. Try again in a minute.",
			wantErr: ErrValidation,
		},
		{
			name:    "4xx без сообщения — общий текст",
			status:  http.StatusLocked,
			body:    `{}`,
			wantMsg: "Invalid username or password",
			wantErr: ErrValidation,
		},
		{
			name:    "401 не раскрывает деталей",
			status:  http.StatusUnauthorized,
			body:    `{"code":"INVALID_CREDENTIALS","message":"user user1 not found"}`,
			wantMsg: "Invalid username or password",
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			svc := NewAuthService(client, testLogger())

			_, err := svc.Login(context.Background(), PortalAdmin, "user1", "Valid1Pass!")
			var loginErr *LoginError
			if !errors.As(err, &loginErr) {
				t.Fatalf("ожидался LoginError, получен %v", err)
			}
			if loginErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, хотели %q", loginErr.Message, tt.wantMsg)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ожидался %v в цепочке: %v", tt.wantErr, err)
			}
		})
	}
}

// TestAuthService_Login_BackendDown — backend недоступен.
func TestAuthService_Login_BackendDown(t *testing.T) {
	client := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	svc := NewAuthService(client, testLogger())

	_, err := svc.Login(context.Background(), PortalAdmin, "user1", "Valid1Pass!")
	var loginErr *LoginError
	if !errors.As(err, &loginErr) {
		t.Fatalf("ожидался LoginError, получен %v", err)
	}
	if loginErr.Message != "Server error. Please try again later." {
		t.Errorf("Message = %q", loginErr.Message)
	}
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("ожидался ErrBackendUnavailable в цепочке: %v", err)
	}
}

// TestMapBackendError — маппинг ошибок backend в сервисные.
func TestMapBackendError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "401 — сброс сессии", err: backend.ErrUnauthorized, want: ErrSessionRejected},
		{name: "404", err: &backend.APIError{StatusCode: 404}, want: ErrNotFound},
		{name: "409", err: &backend.APIError{StatusCode: 409, Message: "dup"}, want: ErrConflict},
		{name: "400", err: &backend.APIError{StatusCode: 400, Message: "bad"}, want: ErrValidation},
		{name: "503", err: &backend.APIError{StatusCode: 503}, want: ErrBackendUnavailable},
		{name: "сетевая ошибка", err: errors.New("connection refused"), want: ErrBackendUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapBackendError(tt.err)
			if tt.want == nil {
				if got != nil {
					t.Errorf("MapBackendError(nil) = %v", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("MapBackendError(%v) = %v, хотели %v в цепочке", tt.err, got, tt.want)
			}
		})
	}
}
