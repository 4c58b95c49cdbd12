package middleware

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"github.com/bigkaa/fileportal/portal-module/internal/domain/rbac"
	"github.com/bigkaa/fileportal/portal-module/internal/session"
)

// testKeyID — идентификатор ключа для тестов.
const testKeyID = "test-key-pm"

// testIssuer — issuer тестовых токенов.
const testIssuer = "https://backend.test"

// generateTestKey генерирует RSA ключ для тестов.
func generateTestKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	return key
}

// buildJWKSetJSON строит JWKS JSON из RSA публичного ключа.
func buildJWKSetJSON(pub *rsa.PublicKey, kid string) json.RawMessage {
	nB64 := base64.RawURLEncoding.EncodeToString(pub.N.Bytes())
	eB64 := base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes())

	jwks := map[string]any{
		"keys": []map[string]any{
			{
				"kty": "RSA",
				"kid": kid,
				"use": "sig",
				"alg": "RS256",
				"n":   nB64,
				"e":   eB64,
			},
		},
	}

	data, _ := json.Marshal(jwks)
	return data
}

// testLogger создаёт logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestValidator создаёт TokenValidator с ключом key.
func newTestValidator(t *testing.T, key *rsa.PrivateKey) *TokenValidator {
	t.Helper()
	jwksJSON := buildJWKSetJSON(&key.PublicKey, testKeyID)
	kf, err := keyfunc.NewJWKSetJSON(jwksJSON)
	if err != nil {
		t.Fatalf("не удалось создать keyfunc: %v", err)
	}
	return NewTokenValidatorWithKeyfunc(kf, testIssuer, testLogger())
}

// generateToken генерирует JWT backend для тестов.
func generateToken(t *testing.T, key *rsa.PrivateKey, issuer string, expired bool) string {
	t.Helper()

	exp := time.Now().Add(time.Hour)
	if expired {
		exp = time.Now().Add(-time.Hour)
	}

	claims := jwt.MapClaims{
		"sub": "42",
		"iss": issuer,
		"exp": jwt.NewNumericDate(exp),
		"nbf": jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		"iat": jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = testKeyID
	tokenStr, err := token.SignedString(key)
	if err != nil {
		t.Fatal(err)
	}
	return tokenStr
}

// sessionRequest создаёт запрос с зашифрованной сессией в cookie.
func sessionRequest(t *testing.T, m *session.Manager, data *session.Data) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := m.SetCookie(rec, data); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/companies", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	return req
}

// --- Тесты TokenValidator ---

// TestTokenValidator_ValidToken — валидный JWT проходит проверку.
func TestTokenValidator_ValidToken(t *testing.T) {
	key := generateTestKey(t)
	validator := newTestValidator(t, key)

	tokenStr := generateToken(t, key, testIssuer, false)
	if err := validator.Validate(context.Background(), tokenStr); err != nil {
		t.Errorf("валидный токен отклонён: %v", err)
	}
}

// TestTokenValidator_ExpiredToken — просроченный токен отклоняется.
func TestTokenValidator_ExpiredToken(t *testing.T) {
	key := generateTestKey(t)
	validator := newTestValidator(t, key)

	tokenStr := generateToken(t, key, testIssuer, true)
	if err := validator.Validate(context.Background(), tokenStr); err == nil {
		t.Error("просроченный токен должен отклоняться")
	}
}

// TestTokenValidator_WrongIssuer — токен с неверным issuer отклоняется.
func TestTokenValidator_WrongIssuer(t *testing.T) {
	key := generateTestKey(t)
	validator := newTestValidator(t, key)

	tokenStr := generateToken(t, key, "https://other-backend.test", false)
	if err := validator.Validate(context.Background(), tokenStr); err == nil {
		t.Error("токен с чужим issuer должен отклоняться")
	}
}

// TestTokenValidator_WrongKey — токен, подписанный чужим ключом.
func TestTokenValidator_WrongKey(t *testing.T) {
	validator := newTestValidator(t, generateTestKey(t))

	otherKey := generateTestKey(t)
	tokenStr := generateToken(t, otherKey, testIssuer, false)
	if err := validator.Validate(context.Background(), tokenStr); err == nil {
		t.Error("токен с чужой подписью должен отклоняться")
	}
}

// TestTokenValidator_EmptyToken — пустой токен отклоняется.
func TestTokenValidator_EmptyToken(t *testing.T) {
	validator := newTestValidator(t, generateTestKey(t))
	if err := validator.Validate(context.Background(), ""); err == nil {
		t.Error("пустой токен должен отклоняться")
	}
}

// --- Тесты SessionAuth ---

// TestSessionAuth_ValidSession — действующая сессия попадает в контекст.
func TestSessionAuth_ValidSession(t *testing.T) {
	manager, err := session.NewManager("test-key", false)
	if err != nil {
		t.Fatal(err)
	}
	auth := NewSessionAuth(manager, nil, testLogger())

	handler := auth.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data := session.FromContext(r.Context())
		if data == nil {
			t.Fatal("сессия не найдена в контексте")
		}
		if data.Username != "admin" || data.Role != rbac.RoleAdmin {
			t.Errorf("сессия = %+v", data)
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := sessionRequest(t, manager, &session.Data{
		Token:     "tok",
		UserID:    1,
		Username:  "admin",
		Role:      rbac.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("ожидался статус 200, получен %d, тело: %s", rec.Code, rec.Body.String())
	}
}

// TestSessionAuth_MissingCookie — запрос без cookie получает 401.
func TestSessionAuth_MissingCookie(t *testing.T) {
	manager, _ := session.NewManager("test-key", false)
	auth := NewSessionAuth(manager, nil, testLogger())

	handler := auth.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler не должен быть вызван")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/companies", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("ожидался статус 401, получен %d", rec.Code)
	}
}

// TestSessionAuth_ExpiredSession — истёкшая сессия: 401 + очистка cookie.
func TestSessionAuth_ExpiredSession(t *testing.T) {
	manager, _ := session.NewManager("test-key", false)
	auth := NewSessionAuth(manager, nil, testLogger())

	handler := auth.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler не должен быть вызван")
	}))

	req := sessionRequest(t, manager, &session.Data{
		Token:     "tok",
		Username:  "user1",
		Role:      rbac.RoleExternalUser,
		ExpiresAt: time.Now().Add(-time.Minute).Unix(),
	})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("ожидался статус 401, получен %d", rec.Code)
	}

	// Middleware должен очистить cookie
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Errorf("cookie не очищен: %+v", cookies)
	}
}

// TestSessionAuth_UndecryptableCookie — cookie от другого ключа: 401 + очистка.
func TestSessionAuth_UndecryptableCookie(t *testing.T) {
	oldManager, _ := session.NewManager("old-key", false)
	newManager, _ := session.NewManager("new-key", false)
	auth := NewSessionAuth(newManager, nil, testLogger())

	handler := auth.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler не должен быть вызван")
	}))

	req := sessionRequest(t, oldManager, &session.Data{
		Token:     "tok",
		Username:  "user1",
		Role:      rbac.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("ожидался статус 401, получен %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Errorf("cookie не очищен: %+v", cookies)
	}
}

// TestSessionAuth_WithValidator — валидатор отклоняет скомпрометированный токен.
func TestSessionAuth_WithValidator(t *testing.T) {
	key := generateTestKey(t)
	validator := newTestValidator(t, key)
	manager, _ := session.NewManager("test-key", false)
	auth := NewSessionAuth(manager, validator, testLogger())

	okHandler := auth.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Сессия с валидным токеном проходит
	req := sessionRequest(t, manager, &session.Data{
		Token:     generateToken(t, key, testIssuer, false),
		Username:  "admin",
		Role:      rbac.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	})
	rec := httptest.NewRecorder()
	okHandler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("валидный токен: ожидался статус 200, получен %d", rec.Code)
	}

	// Сессия с токеном на чужом ключе отклоняется
	otherKey := generateTestKey(t)
	req = sessionRequest(t, manager, &session.Data{
		Token:     generateToken(t, otherKey, testIssuer, false),
		Username:  "admin",
		Role:      rbac.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	})
	rec = httptest.NewRecorder()
	okHandler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("чужой токен: ожидался статус 401, получен %d", rec.Code)
	}
}

// --- Тесты ролевых middleware ---

// TestRequireRole_HasRole — пользователь с нужной ролью.
func TestRequireRole_HasRole(t *testing.T) {
	handler := RequireRole(rbac.RoleAdmin, rbac.RoleInternalUser)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ctx := session.WithData(context.Background(), &session.Data{Role: rbac.RoleAdmin})
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("ожидался статус 200, получен %d", rec.Code)
	}
}

// TestRequireRole_MissingRole — пользователь без нужной роли.
func TestRequireRole_MissingRole(t *testing.T) {
	handler := RequireRole(rbac.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler не должен быть вызван")
	}))

	ctx := session.WithData(context.Background(), &session.Data{Role: rbac.RoleExternalUser})
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("ожидался статус 403, получен %d", rec.Code)
	}
}

// TestRequireRole_NoSession — отсутствие сессии в контексте.
func TestRequireRole_NoSession(t *testing.T) {
	handler := RequireRole(rbac.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler не должен быть вызван")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("ожидался статус 401, получен %d", rec.Code)
	}
}

// TestRequireNavPath — проверка по дереву навигации.
func TestRequireNavPath(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		navPath  string
		wantCode int
	}{
		{name: "администратор на users", role: rbac.RoleAdmin, navPath: "/users", wantCode: http.StatusOK},
		{name: "внешний пользователь на users", role: rbac.RoleExternalUser, navPath: "/users", wantCode: http.StatusForbidden},
		{name: "внутренний пользователь на products", role: rbac.RoleInternalUser, navPath: "/products", wantCode: http.StatusOK},
		{name: "стандартный пользователь на files", role: rbac.RoleStandardUser, navPath: "/files", wantCode: http.StatusOK},
		{name: "неизвестная роль", role: "SUPERVISOR", navPath: "/files", wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireNavPath(tt.navPath)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			ctx := session.WithData(context.Background(), &session.Data{Role: tt.role})
			req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("ожидался статус %d, получен %d", tt.wantCode, rec.Code)
			}
		})
	}
}
