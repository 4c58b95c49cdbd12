// Точка входа Portal Module — административный портал системы File Portal.
// Загружает конфигурацию, создаёт клиент backend REST API, менеджер сессий
// и кэш списков, инициализирует сервисный слой и API handlers, запускает
// мониторинг зависимостей (topologymetrics), HTTP-сервер с сессионным
// middleware и graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/bigkaa/fileportal/portal-module/internal/api/handlers"
	"github.com/bigkaa/fileportal/portal-module/internal/api/middleware"
	"github.com/bigkaa/fileportal/portal-module/internal/backend"
	"github.com/bigkaa/fileportal/portal-module/internal/config"
	"github.com/bigkaa/fileportal/portal-module/internal/listcache"
	"github.com/bigkaa/fileportal/portal-module/internal/server"
	"github.com/bigkaa/fileportal/portal-module/internal/service"
	"github.com/bigkaa/fileportal/portal-module/internal/session"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("Portal Module запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	if cfg.SessionSecret == "" {
		logger.Warn("PM_SESSION_SECRET не задан, сессии не сохраняются между рестартами")
	}

	// 3. Менеджер сессий (AES-256-GCM cookie)
	sessionMgr, err := session.NewManager(cfg.SessionSecret, cfg.SessionSecure)
	if err != nil {
		logger.Error("Ошибка создания менеджера сессий", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Клиент backend REST API.
	// Токен берётся из сессии текущего запроса: portal-module сам
	// учётных данных не хранит.
	backendClient, err := backend.New(cfg.BackendURL, cfg.BackendCACertPath, backend.SessionTokenProvider(), logger)
	if err != nil {
		logger.Error("Ошибка создания клиента backend", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Клиент backend создан", slog.String("url", cfg.BackendURL))

	// 5. Кэш списков (LRU с TTL)
	cache := listcache.New(cfg.CacheSize, cfg.CacheTTL)

	// 6. Services
	authSvc := service.NewAuthService(backendClient, logger)
	activationSvc := service.NewActivationService(backendClient, logger)
	companiesSvc := service.NewCompanyService(backendClient, cache, logger)
	productsSvc := service.NewProductService(backendClient, cache, logger)
	usersSvc := service.NewUserService(backendClient, cache, logger)
	filesSvc := service.NewFileService(backendClient, cache, logger)

	// 7. Опциональная локальная проверка подписи токена сессии.
	// Без PM_JWT_JWKS_URL подпись проверяет backend на проксируемых запросах.
	var tokenValidator *middleware.TokenValidator
	var jwksChecker handlers.ReadinessChecker
	if cfg.JWTJWKSURL != "" {
		tokenValidator, err = middleware.NewTokenValidator(
			cfg.JWTJWKSURL,
			cfg.BackendCACertPath,
			cfg.JWTIssuer,
			cfg.JWKSClientTimeout,
			cfg.JWKSRefreshInterval,
			cfg.JWTLeeway,
			logger,
		)
		if err != nil {
			logger.Error("Ошибка создания JWKS-валидатора", slog.String("error", err.Error()))
			os.Exit(1)
		}

		checker, checkerErr := middleware.NewJWKSReadinessChecker(cfg.JWTJWKSURL, cfg.BackendCACertPath, cfg.JWKSClientTimeout)
		if checkerErr != nil {
			logger.Error("Ошибка создания JWKS readiness checker", slog.String("error", checkerErr.Error()))
			os.Exit(1)
		}
		jwksChecker = checker

		logger.Info("Локальная проверка токенов включена",
			slog.String("jwks_url", cfg.JWTJWKSURL),
		)
	}

	// 8. topologymetrics — мониторинг зависимости backend
	ctx := context.Background()
	var backendChecker handlers.ReadinessChecker
	dephealthSvc, dephealthErr := service.NewDephealthService(
		"portal-module",
		cfg.DephealthGroup,
		cfg.BackendURL,
		cfg.DephealthBackendHealthPath,
		cfg.DephealthCheckInterval,
		logger,
	)
	if dephealthErr != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", dephealthErr.Error()),
		)
	} else {
		if startErr := dephealthSvc.Start(ctx); startErr != nil {
			logger.Warn("Ошибка запуска topologymetrics",
				slog.String("error", startErr.Error()),
			)
		} else {
			backendChecker = dephealthSvc
			logger.Info("topologymetrics запущен",
				slog.String("group", cfg.DephealthGroup),
				slog.String("check_interval", cfg.DephealthCheckInterval.String()),
			)
		}
	}

	// 9. API handler
	healthHandler := handlers.NewHealthHandler(backendChecker, jwksChecker)
	apiHandler := handlers.NewAPIHandler(
		healthHandler,
		authSvc,
		activationSvc,
		companiesSvc,
		productsSvc,
		usersSvc,
		filesSvc,
		sessionMgr,
		logger,
	)

	// 10. Сессионное middleware
	sessionAuth := middleware.NewSessionAuth(sessionMgr, tokenValidator, logger)

	// 11. Создание и запуск HTTP-сервера
	srv := server.New(cfg, logger, apiHandler, sessionAuth)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 12. Graceful shutdown фоновых задач
	if dephealthSvc != nil && backendChecker != nil {
		dephealthSvc.Stop()
	}

	logger.Info("Portal Module остановлен")
}
