// Пакет server — HTTP-сервер Portal Module с graceful shutdown.
// Без TLS — HTTP внутри кластера, TLS termination на ingress.
//
// Маршруты делятся на три группы:
//   - публичные: health, metrics, логин, активация, статика SPA
//   - сессионные: всё под /api/v1, кроме логина и активации
//   - ролевые: управление пользователями, компаниями и продуктами
//     дополнительно защищено деревом навигации
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/fileportal/portal-module/internal/api/handlers"
	"github.com/bigkaa/fileportal/portal-module/internal/api/middleware"
	"github.com/bigkaa/fileportal/portal-module/internal/config"
	"github.com/bigkaa/fileportal/portal-module/internal/ui/static"
)

// Server — HTTP-сервер Portal Module.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New создаёт новый HTTP-сервер с настроенными routes и middleware.
// sessionAuth защищает приватную часть API; ролевые ограничения
// выводятся из дерева навигации.
func New(cfg *config.Config, logger *slog.Logger, handler *handlers.APIHandler, sessionAuth *middleware.SessionAuth) *Server {
	router := chi.NewRouter()

	// Глобальные middleware (применяются ко ВСЕМ маршрутам)
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestLogger(logger))

	// --- Публичные endpoints ---

	router.Get("/health/live", handler.HealthLive)
	router.Get("/health/ready", handler.HealthReady)
	router.Get("/metrics", handler.GetMetrics)

	router.Post("/api/v1/auth/login/{portal}", handler.Login)
	router.Post("/api/v1/auth/logout", handler.Logout)
	router.Get("/api/v1/activation/validate", handler.ValidateActivation)
	router.Post("/api/v1/activation/password", handler.SetActivationPassword)

	// --- Сессионные endpoints ---

	router.Group(func(r chi.Router) {
		r.Use(sessionAuth.Middleware())

		r.Get("/api/v1/auth/me", handler.Me)
		r.Get("/api/v1/navigation", handler.Navigation)

		// Файлы доступны всем ролям портала
		r.Route("/api/v1/files", func(r chi.Router) {
			r.Use(middleware.RequireNavPath("/files"))
			r.Get("/", handler.ListFiles)
			r.Get("/download-link", handler.DownloadLink)
			r.Post("/upload", handler.UploadFile)
		})

		// Компании — только ADMIN
		r.Route("/api/v1/companies", func(r chi.Router) {
			r.Use(middleware.RequireNavPath("/company"))
			r.Get("/", handler.ListCompanies)
			r.Get("/all", handler.AllCompanies)
			r.Get("/{id}", handler.GetCompany)
			r.Post("/", handler.CreateCompany)
		})

		// Продукты — ADMIN и INTERNAL_USER
		r.Route("/api/v1/products", func(r chi.Router) {
			r.Use(middleware.RequireNavPath("/products"))
			r.Get("/", handler.ListProducts)
			r.Post("/", handler.CreateProduct)
		})

		// Пользователи — только ADMIN
		r.Route("/api/v1/users", func(r chi.Router) {
			r.Use(middleware.RequireNavPath("/users"))
			r.Get("/", handler.ListUsers)
			r.Get("/{id}", handler.GetUser)
			r.Post("/", handler.CreateUser)
		})
	})

	// --- Статика SPA ---

	// Ассеты раздаются как есть; любой прочий GET-путь получает
	// index.html — маршрутизацией занимается SPA на клиенте.
	router.Handle("/assets/*", http.FileServer(static.FileSystem()))
	router.NotFound(static.SPAHandler())

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// Run запускает сервер и ожидает сигнала завершения (SIGINT, SIGTERM).
// При получении сигнала выполняется graceful shutdown.
func (s *Server) Run() error {
	// Канал для ошибок сервера
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
