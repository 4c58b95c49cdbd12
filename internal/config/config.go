// Пакет config — загрузка и валидация конфигурации Portal Module
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации Portal Module.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера (диапазон 8000-8009)
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- Backend REST API ---

	// Базовый URL backend REST API
	BackendURL string
	// Путь к CA-сертификату для TLS-соединений с backend (опционально)
	BackendCACertPath string

	// --- Сессии ---

	// Секрет шифрования session cookie (base64 от 32 bytes либо
	// произвольная строка; пустой — случайный ключ на время процесса)
	SessionSecret string
	// Secure flag на session cookie (true при работе за HTTPS)
	SessionSecure bool

	// --- Кэш списков ---

	// Время жизни записи кэша списков
	CacheTTL time.Duration
	// Максимальное число записей кэша списков
	CacheSize int

	// --- JWT (опциональная локальная проверка токена сессии) ---

	// URL JWKS endpoint backend; пустой — локальная проверка выключена
	JWTJWKSURL string
	// Issuer токенов backend (опционально)
	JWTIssuer string
	// Таймаут HTTP-клиента JWKS
	JWKSClientTimeout time.Duration
	// Интервал обновления JWKS
	JWKSRefreshInterval time.Duration
	// Допуск рассинхронизации часов при проверке exp/nbf
	JWTLeeway time.Duration

	// --- Dephealth (topologymetrics) ---

	// Имя группы в метриках dephealth
	DephealthGroup string
	// Интервал проверки зависимостей
	DephealthCheckInterval time.Duration
	// Путь health endpoint backend
	DephealthBackendHealthPath string

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown HTTP-сервера
	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения, валидирует
// обязательные поля и возвращает Config или ошибку.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// PM_PORT — порт HTTP-сервера (по умолчанию 8004)
	cfg.Port, err = getEnvInt("PM_PORT", 8004)
	if err != nil {
		return nil, fmt.Errorf("PM_PORT: %w", err)
	}
	if cfg.Port < 8000 || cfg.Port > 8009 {
		return nil, fmt.Errorf("PM_PORT: значение %d вне допустимого диапазона 8000-8009", cfg.Port)
	}

	// PM_LOG_LEVEL — уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("PM_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("PM_LOG_LEVEL: %w", err)
	}

	// PM_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("PM_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("PM_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- Backend REST API ---

	// PM_BACKEND_URL — обязательный
	cfg.BackendURL, err = getEnvRequired("PM_BACKEND_URL")
	if err != nil {
		return nil, err
	}
	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")
	if _, err := url.ParseRequestURI(cfg.BackendURL); err != nil {
		return nil, fmt.Errorf("PM_BACKEND_URL: некорректный URL %q", cfg.BackendURL)
	}

	// PM_BACKEND_CA_CERT_PATH — путь к CA-сертификату backend (опционально)
	cfg.BackendCACertPath = getEnvDefault("PM_BACKEND_CA_CERT_PATH", "")

	// --- Сессии ---

	// PM_SESSION_SECRET — секрет шифрования cookie. Пустой секрет
	// допустим, но сессии не переживут рестарт процесса.
	cfg.SessionSecret = getEnvDefault("PM_SESSION_SECRET", "")

	// PM_SESSION_SECURE — Secure flag на cookie (по умолчанию true)
	cfg.SessionSecure, err = getEnvBool("PM_SESSION_SECURE", true)
	if err != nil {
		return nil, fmt.Errorf("PM_SESSION_SECURE: %w", err)
	}

	// --- Кэш списков ---

	// PM_CACHE_TTL — TTL записей кэша списков (по умолчанию 30s)
	cfg.CacheTTL, err = getEnvDuration("PM_CACHE_TTL", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PM_CACHE_TTL: %w", err)
	}

	// PM_CACHE_SIZE — максимум записей кэша (по умолчанию 512)
	cfg.CacheSize, err = getEnvInt("PM_CACHE_SIZE", 512)
	if err != nil {
		return nil, fmt.Errorf("PM_CACHE_SIZE: %w", err)
	}
	if cfg.CacheSize < 1 || cfg.CacheSize > 100000 {
		return nil, fmt.Errorf("PM_CACHE_SIZE: значение %d вне допустимого диапазона 1-100000", cfg.CacheSize)
	}

	// --- JWT ---

	// PM_JWT_JWKS_URL — включает локальную проверку подписи токена
	// сессии; пустой — проверку выполняет backend на проксируемых запросах
	cfg.JWTJWKSURL = getEnvDefault("PM_JWT_JWKS_URL", "")

	// PM_JWT_ISSUER — ожидаемый issuer токенов (опционально)
	cfg.JWTIssuer = getEnvDefault("PM_JWT_ISSUER", "")

	// PM_JWKS_CLIENT_TIMEOUT — таймаут HTTP-клиента JWKS (по умолчанию 10s)
	cfg.JWKSClientTimeout, err = getEnvDuration("PM_JWKS_CLIENT_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PM_JWKS_CLIENT_TIMEOUT: %w", err)
	}

	// PM_JWKS_REFRESH_INTERVAL — интервал обновления JWKS (по умолчанию 1h)
	cfg.JWKSRefreshInterval, err = getEnvDuration("PM_JWKS_REFRESH_INTERVAL", time.Hour)
	if err != nil {
		return nil, fmt.Errorf("PM_JWKS_REFRESH_INTERVAL: %w", err)
	}

	// PM_JWT_LEEWAY — допуск рассинхронизации часов (по умолчанию 30s)
	cfg.JWTLeeway, err = getEnvDuration("PM_JWT_LEEWAY", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PM_JWT_LEEWAY: %w", err)
	}

	// --- Dephealth ---

	// PM_DEPHEALTH_GROUP — имя группы в метриках (по умолчанию fileportal)
	cfg.DephealthGroup = getEnvDefault("PM_DEPHEALTH_GROUP", "fileportal")

	// PM_DEPHEALTH_CHECK_INTERVAL — интервал проверки зависимостей (по умолчанию 15s)
	cfg.DephealthCheckInterval, err = getEnvDuration("PM_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PM_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// PM_DEPHEALTH_BACKEND_HEALTH_PATH — health endpoint backend (по умолчанию /health)
	cfg.DephealthBackendHealthPath = getEnvDefault("PM_DEPHEALTH_BACKEND_HEALTH_PATH", "/health")

	// --- Graceful shutdown ---

	// PM_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("PM_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PM_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvBool возвращает булево значение переменной окружения или значение по умолчанию.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное булево значение: %q", val)
	}
	return b, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
