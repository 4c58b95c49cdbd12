package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/fileportal/portal-module/internal/backend"
	"github.com/bigkaa/fileportal/portal-module/internal/domain/model"
	"github.com/bigkaa/fileportal/portal-module/internal/domain/rbac"
	"github.com/bigkaa/fileportal/portal-module/internal/listcache"
	"github.com/bigkaa/fileportal/portal-module/internal/service"
	"github.com/bigkaa/fileportal/portal-module/internal/session"
)

// testLogger создаёт logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// errorEnvelope — формат ошибок портала для декодирования в тестах.
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// newTestHandler собирает APIHandler поверх mock backend.
func newTestHandler(t *testing.T, backendHandler http.HandlerFunc) (*APIHandler, *session.Manager) {
	t.Helper()

	server := httptest.NewServer(backendHandler)
	t.Cleanup(server.Close)

	client, err := backend.New(server.URL, "", backend.SessionTokenProvider(), testLogger())
	if err != nil {
		t.Fatal(err)
	}

	sessions, err := session.NewManager("test-secret", false)
	if err != nil {
		t.Fatal(err)
	}

	logger := testLogger()
	cache := listcache.New(100, time.Minute)

	handler := NewAPIHandler(
		NewHealthHandler(nil, nil),
		service.NewAuthService(client, logger),
		service.NewActivationService(client, logger),
		service.NewCompanyService(client, cache, logger),
		service.NewProductService(client, cache, logger),
		service.NewUserService(client, cache, logger),
		service.NewFileService(client, cache, logger),
		sessions,
		logger,
	)
	return handler, sessions
}

// testRouter монтирует маршруты, проверяемые в тестах.
func testRouter(h *APIHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/v1/auth/login/{portal}", h.Login)
	r.Post("/api/v1/auth/logout", h.Logout)
	r.Get("/api/v1/activation/validate", h.ValidateActivation)
	r.Post("/api/v1/activation/password", h.SetActivationPassword)
	r.Get("/api/v1/companies", h.ListCompanies)
	r.Get("/api/v1/companies/{id}", h.GetCompany)
	r.Get("/api/v1/files", h.ListFiles)
	r.Get("/api/v1/files/download-link", h.DownloadLink)
	r.Post("/api/v1/files/upload", h.UploadFile)
	return r
}

// loginBackend — mock backend с одним пользователем user1/Valid1Pass!.
func loginBackend(role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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
			Token:    "jwt",
			UserID:   7,
			Username: "user1",
			Role:     role,
		})
	}
}

// postJSON выполняет POST с JSON-телом через router.
func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// TestLogin_Success — успешный вход: cookie установлен, ответ содержит
// landing-маршрут и паузу перед переходом.
func TestLogin_Success(t *testing.T) {
	h, sessions := newTestHandler(t, loginBackend(rbac.RoleAdmin))
	router := testRouter(h)

	rec := postJSON(t, router, "/api/v1/auth/login/admin", loginRequest{
		Username: "user1",
		Password: "Valid1Pass!",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, тело: %s", rec.Code, rec.Body.String())
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.RedirectTo != "/dashboard" || resp.RedirectDelayMillis != 650 {
		t.Errorf("ответ = %+v", resp)
	}

	// Cookie расшифровывается обратно в данные сессии
	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatal("session cookie не установлен")
	}
	data, err := sessions.Decrypt(sessionCookie.Value)
	if err != nil {
		t.Fatal(err)
	}
	if data.Username != "user1" || data.Role != rbac.RoleAdmin || data.Token != "jwt" {
		t.Errorf("сессия = %+v", data)
	}
}

// TestLogin_InvalidCredentials — 401 с сообщением для пользователя.
func TestLogin_InvalidCredentials(t *testing.T) {
	h, _ := newTestHandler(t, loginBackend(rbac.RoleAdmin))
	router := testRouter(h)

	rec := postJSON(t, router, "/api/v1/auth/login/admin", loginRequest{
		Username: "user1",
		Password: "wrong",
	})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("статус = %d", rec.Code)
	}
	var env errorEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if env.Error.Message != "Invalid username or password" {
		t.Errorf("message = %q", env.Error.Message)
	}
}

// TestLogin_PortalMismatch — то же сообщение, что и при неверном пароле.
func TestLogin_PortalMismatch(t *testing.T) {
	h, _ := newTestHandler(t, loginBackend(rbac.RoleAdmin))
	router := testRouter(h)

	rec := postJSON(t, router, "/api/v1/auth/login/user", loginRequest{
		Username: "user1",
		Password: "Valid1Pass!",
	})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("статус = %d", rec.Code)
	}
	var env errorEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if env.Error.Message != "Invalid username or password" {
		t.Errorf("message = %q — не должен раскрывать причину", env.Error.Message)
	}
}

// TestLogin_UnknownPortal — неизвестный портал входа.
func TestLogin_UnknownPortal(t *testing.T) {
	h, _ := newTestHandler(t, loginBackend(rbac.RoleAdmin))
	router := testRouter(h)

	rec := postJSON(t, router, "/api/v1/auth/login/root", loginRequest{
		Username: "user1",
		Password: "Valid1Pass!",
	})

	if rec.Code != http.StatusNotFound {
		t.Errorf("статус = %d", rec.Code)
	}
}

// TestLogin_BackendDown — 502 с сообщением о серверной ошибке.
func TestLogin_BackendDown(t *testing.T) {
	h, _ := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	router := testRouter(h)

	rec := postJSON(t, router, "/api/v1/auth/login/admin", loginRequest{
		Username: "user1",
		Password: "Valid1Pass!",
	})

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("статус = %d", rec.Code)
	}
	var env errorEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if env.Error.Message != "Server error. Please try again later." {
		t.Errorf("message = %q", env.Error.Message)
	}
}

// TestLogout — cookie очищается.
func TestLogout(t *testing.T) {
	h, _ := newTestHandler(t, loginBackend(rbac.RoleAdmin))
	router := testRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d", rec.Code)
	}
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("session cookie не очищен")
	}
}

// TestValidateActivation — недействительный токен: valid=false, не ошибка.
func TestValidateActivation_InvalidToken(t *testing.T) {
	h, _ := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	router := testRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/activation/validate?token=expired", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d", rec.Code)
	}
	var outcome service.ValidationOutcome
	_ = json.Unmarshal(rec.Body.Bytes(), &outcome)
	if outcome.Valid {
		t.Error("токен не должен быть действителен")
	}
	if outcome.Message == "" {
		t.Error("нет сообщения для пользователя")
	}
}

// TestSetActivationPassword_WeakPassword — локальная валидация пароля:
// backend не вызывается, сообщение отдаётся пользователю как есть.
func TestSetActivationPassword_WeakPassword(t *testing.T) {
	h, _ := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend не должен вызываться")
	})
	router := testRouter(h)

	rec := postJSON(t, router, "/api/v1/activation/password", setPasswordRequest{
		Token:           "tok",
		Password:        "alllowercase1!",
		ConfirmPassword: "alllowercase1!",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("статус = %d", rec.Code)
	}
	var env errorEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if !strings.Contains(env.Error.Message, "uppercase and lowercase") {
		t.Errorf("message = %q", env.Error.Message)
	}
}

// TestActivationCookieFlow — токен из ссылки сохраняется в cookie,
// форма пароля может отправляться без токена, успех очищает cookie.
func TestActivationCookieFlow(t *testing.T) {
	h, _ := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/activation/validate":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(backend.ActivationStatus{Valid: true, Username: "newuser"})
		case "/api/activation/set-password":
			var body struct {
				Token string `json:"token"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body.Token != "tok123" {
				t.Errorf("токен = %q, хотели tok123", body.Token)
			}
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	router := testRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/activation/validate?token=tok123", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("статус validate = %d", rec.Code)
	}
	var activationCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == activationCookieName {
			activationCookie = c
		}
	}
	if activationCookie == nil || activationCookie.Value != "tok123" {
		t.Fatalf("активационный cookie не установлен: %+v", activationCookie)
	}

	// Форма пароля без токена — токен берётся из cookie
	buf, _ := json.Marshal(setPasswordRequest{
		Password:        "Valid1Pass!",
		ConfirmPassword: "Valid1Pass!",
	})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/activation/password", bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(activationCookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("статус set-password = %d, тело: %s", rec.Code, rec.Body.String())
	}
	var outcome service.SetPasswordOutcome
	_ = json.Unmarshal(rec.Body.Bytes(), &outcome)
	if !outcome.Done || outcome.RedirectTo != "/login/user" {
		t.Errorf("результат = %+v", outcome)
	}

	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == activationCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("активационный cookie не очищен после успеха")
	}
}

// TestListCompanies — параметры запроса доходят до списочного состояния.
func TestListCompanies(t *testing.T) {
	companies := []model.Company{
		{ID: 1, Name: "Beta", Status: "ACTIVE"},
		{ID: 2, Name: "Alpha", Status: "ACTIVE"},
		{ID: 3, Name: "Gamma", Status: "INACTIVE"},
	}
	h, _ := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(companies)
	})
	router := testRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/companies?sortBy=name&direction=desc&status=ACTIVE", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, тело: %s", rec.Code, rec.Body.String())
	}

	var result service.CompanyListResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.TotalElements != 2 || result.TotalUnfiltered != 3 {
		t.Errorf("счётчики: total=%d, unfiltered=%d", result.TotalElements, result.TotalUnfiltered)
	}
	if len(result.Content) != 2 || result.Content[0].Name != "Beta" {
		t.Errorf("содержимое: %+v", result.Content)
	}
}

// TestGetCompany_BadID — нечисловой идентификатор.
func TestGetCompany_BadID(t *testing.T) {
	h, _ := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend не должен вызываться")
	})
	router := testRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/companies/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("статус = %d", rec.Code)
	}
}

// TestListCompanies_SessionRejected — backend отвечает 401:
// cookie очищается, клиент уходит на логин.
func TestListCompanies_SessionRejected(t *testing.T) {
	h, _ := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	router := testRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/companies", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("статус = %d", rec.Code)
	}
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("session cookie не очищен после отказа backend")
	}
}

// TestListFiles_DependentFilter — фильтр продукта без выбранной компании
// к backend не уходит: продукты привязаны к компании.
func TestListFiles_DependentFilter(t *testing.T) {
	var gotQuery url.Values
	h, _ := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[]}`))
	})
	router := testRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/files?productId=10&fileType=REPORT", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, тело: %s", rec.Code, rec.Body.String())
	}
	if gotQuery.Get("productId") != "" {
		t.Error("фильтр productId без companyId не должен уходить к backend")
	}
	if gotQuery.Get("fileType") != "REPORT" {
		t.Errorf("fileType = %q, хотели REPORT", gotQuery.Get("fileType"))
	}

	// С выбранной компанией фильтр продукта проходит как есть
	req = httptest.NewRequest(http.MethodGet, "/api/v1/files?companyId=5&productId=10", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, тело: %s", rec.Code, rec.Body.String())
	}
	if gotQuery.Get("companyId") != "5" || gotQuery.Get("productId") != "10" {
		t.Errorf("параметры backend = %v", gotQuery)
	}
}

// TestDownloadLink — presigned URL и валидация ключа.
func TestDownloadLink(t *testing.T) {
	h, _ := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/s3/files/presign-download" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"url": "https://s3.example.com/signed"})
	})
	router := testRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/files/download-link?key=ACME/EHS/20JAN2026/data.csv&name=data.csv", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, тело: %s", rec.Code, rec.Body.String())
	}
	var resp downloadLinkResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.URL != "https://s3.example.com/signed" {
		t.Errorf("url = %q", resp.URL)
	}

	// Без ключа — 400
	req = httptest.NewRequest(http.MethodGet, "/api/v1/files/download-link?name=data.csv", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("статус без ключа = %d", rec.Code)
	}
}

// TestUploadFile — multipart-форма доходит до backend.
func TestUploadFile(t *testing.T) {
	h, _ := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/s3/files/upload" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatal(err)
		}
		if r.FormValue("companyId") != "5" || r.FormValue("fileType") != model.FileTypeReport {
			t.Errorf("форма: companyId=%q fileType=%q", r.FormValue("companyId"), r.FormValue("fileType"))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(model.FileRecord{ID: 1, Status: model.FileStatusUploaded})
	})
	router := testRouter(h)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "report.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte("pdf-bytes")); err != nil {
		t.Fatal(err)
	}
	_ = mw.WriteField("companyId", "5")
	_ = mw.WriteField("companyName", "ACME")
	_ = mw.WriteField("productId", "10")
	_ = mw.WriteField("productName", "EHS")
	_ = mw.WriteField("fileType", model.FileTypeReport)
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/files/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("статус = %d, тело: %s", rec.Code, rec.Body.String())
	}
	var record model.FileRecord
	_ = json.Unmarshal(rec.Body.Bytes(), &record)
	if record.Status != model.FileStatusUploaded {
		t.Errorf("запись = %+v", record)
	}
}

// TestUploadFile_MissingFile — форма без файла отклоняется локально.
func TestUploadFile_MissingFile(t *testing.T) {
	h, _ := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend не должен вызываться")
	})
	router := testRouter(h)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("companyId", "5")
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/files/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("статус = %d", rec.Code)
	}
}

// TestMeAndNavigation — данные сессии из контекста.
func TestMeAndNavigation(t *testing.T) {
	h, _ := newTestHandler(t, loginBackend(rbac.RoleStandardUser))

	data := &session.Data{
		UserID:   7,
		Username: "user1",
		Role:     rbac.RoleStandardUser,
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req = req.WithContext(session.WithData(req.Context(), data))
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("статус me = %d", rec.Code)
	}
	var me meResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &me)
	if me.Username != "user1" || me.Role != rbac.RoleStandardUser {
		t.Errorf("me = %+v", me)
	}

	// Навигация стандартного пользователя не содержит админских пунктов
	req = httptest.NewRequest(http.MethodGet, "/api/v1/navigation", nil)
	req = req.WithContext(session.WithData(req.Context(), data))
	rec = httptest.NewRecorder()
	h.Navigation(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("статус navigation = %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "/users") || strings.Contains(body, "/company") {
		t.Errorf("навигация содержит админские пункты: %s", body)
	}
	if !strings.Contains(body, "/files/upload") {
		t.Errorf("навигация не содержит загрузку файлов: %s", body)
	}

	// Без сессии — 401
	req = httptest.NewRequest(http.MethodGet, "/api/v1/navigation", nil)
	rec = httptest.NewRecorder()
	h.Navigation(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("статус без сессии = %d", rec.Code)
	}
}

// TestHealthReady — fail при отсутствии checker backend.
func TestHealthReady(t *testing.T) {
	h := NewHealthHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	h.HealthReady(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("статус = %d", rec.Code)
	}

	// С работающим backend — ok
	h = NewHealthHandler(readinessFunc(func() (string, string) { return "ok", "" }), nil)
	rec = httptest.NewRecorder()
	h.HealthReady(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("статус = %d", rec.Code)
	}
}

// readinessFunc — адаптер функции к ReadinessChecker.
type readinessFunc func() (string, string)

func (f readinessFunc) CheckReady() (string, string) { return f() }
