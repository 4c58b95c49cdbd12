// Пакет backend — HTTP-клиент к backend REST API портала.
// Поддерживает TLS с кастомным CA (PM_BACKEND_CA_CERT_PATH).
// Bearer-токен подставляется через TokenProvider из сессии запроса.
package backend

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/bigkaa/fileportal/portal-module/internal/domain/listquery"
	"github.com/bigkaa/fileportal/portal-module/internal/session"
)

// TokenProvider — функция, возвращающая bearer-токен для авторизации
// запросов к backend. Обычно читает токен из сессии в контексте.
type TokenProvider func(ctx context.Context) (string, error)

// SessionTokenProvider возвращает TokenProvider, читающий токен из
// сессии в контексте запроса. Отсутствие сессии — не ошибка:
// публичные операции (логин, активация) выполняются без токена.
func SessionTokenProvider() TokenProvider {
	return func(ctx context.Context) (string, error) {
		if data := session.FromContext(ctx); data != nil {
			return data.Token, nil
		}
		return "", nil
	}
}

// Client — HTTP-клиент к backend REST API.
type Client struct {
	baseURL       string // Базовый URL backend (без trailing slash)
	httpClient    *http.Client
	tokenProvider TokenProvider
	logger        *slog.Logger
}

// New создаёт клиент backend.
// caCertPath — путь к CA-сертификату для TLS (пустая строка — стандартный пул).
// tokenProvider — функция для получения bearer-токена (nil — без авторизации).
func New(baseURL, caCertPath string, tokenProvider TokenProvider, logger *slog.Logger) (*Client, error) {
	httpClient := &http.Client{Timeout: 30 * time.Second}

	if caCertPath != "" {
		tlsConfig, err := buildTLSConfig(caCertPath)
		if err != nil {
			return nil, fmt.Errorf("загрузка CA-сертификата backend: %w", err)
		}
		httpClient.Transport = &http.Transport{
			TLSClientConfig: tlsConfig,
		}
		logger.Info("CA-сертификат backend добавлен в пул доверия",
			slog.String("ca_cert", caCertPath),
		)
	}

	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    httpClient,
		tokenProvider: tokenProvider,
		logger:        logger.With(slog.String("component", "backend_client")),
	}, nil
}

// BaseURL возвращает базовый URL backend (для health-проверок).
func (c *Client) BaseURL() string {
	return c.baseURL
}

// buildTLSConfig создаёт TLS-конфигурацию с кастомным CA.
func buildTLSConfig(caCertPath string) (*tls.Config, error) {
	caCert, err := os.ReadFile(caCertPath)
	if err != nil {
		return nil, fmt.Errorf("чтение CA-сертификата: %w", err)
	}

	caCertPool, err := x509.SystemCertPool()
	if err != nil {
		caCertPool = x509.NewCertPool()
	}
	caCertPool.AppendCertsFromPEM(caCert)

	return &tls.Config{
		RootCAs: caCertPool,
	}, nil
}

// --- HTTP helpers ---

// do выполняет HTTP-запрос к backend с JSON-телом и авторизацией.
func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("сериализация тела запроса: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("создание запроса: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := c.authorize(ctx, req); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("запрос %s %s к backend: %w", method, path, err)
	}
	return resp, nil
}

// authorize подставляет bearer-токен в запрос, если он доступен.
func (c *Client) authorize(ctx context.Context, req *http.Request) error {
	if c.tokenProvider == nil {
		return nil
	}
	token, err := c.tokenProvider(ctx)
	if err != nil {
		return fmt.Errorf("получение токена для backend: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

// decodeResponse декодирует JSON ответ в target.
func decodeResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp)
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("декодирование ответа backend: %w", err)
		}
	}

	return nil
}

// decodeJSONBody декодирует тело ответа без проверки статуса и закрытия.
// Для операций, которые обрабатывают статусы ответа самостоятельно.
func decodeJSONBody(resp *http.Response, target any) error {
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("декодирование ответа backend: %w", err)
	}
	return nil
}

// listValues строит query-параметры пагинации из списочного запроса.
// Фильтры запроса передаются backend как одноимённые параметры.
func listValues(q listquery.Query) url.Values {
	values := url.Values{
		"page": {fmt.Sprintf("%d", q.Page)},
		"size": {fmt.Sprintf("%d", q.Size)},
	}
	if q.SortKey != "" {
		values.Set("sortBy", q.SortKey)
		values.Set("direction", q.SortDir)
	}
	for name, value := range q.Filters {
		values.Set(name, value)
	}
	return values
}
