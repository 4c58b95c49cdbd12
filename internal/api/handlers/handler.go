// handler.go — основной обработчик JSON API портала.
// Объединяет доменные обработчики и делегирует запросы в сервисный слой.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/fileportal/portal-module/internal/api/errors"
	"github.com/bigkaa/fileportal/portal-module/internal/service"
	"github.com/bigkaa/fileportal/portal-module/internal/session"
)

// APIHandler — основной обработчик API portal-module.
// Делегирует запросы в сервисный слой.
type APIHandler struct {
	health     *HealthHandler
	auth       *service.AuthService
	activation *service.ActivationService
	companies  *service.CompanyService
	products   *service.ProductService
	users      *service.UserService
	files      *service.FileService
	sessions   *session.Manager
	logger     *slog.Logger
}

// NewAPIHandler создаёт основной обработчик API.
func NewAPIHandler(
	health *HealthHandler,
	auth *service.AuthService,
	activation *service.ActivationService,
	companies *service.CompanyService,
	products *service.ProductService,
	users *service.UserService,
	files *service.FileService,
	sessions *session.Manager,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		health:     health,
		auth:       auth,
		activation: activation,
		companies:  companies,
		products:   products,
		users:      users,
		files:      files,
		sessions:   sessions,
		logger:     logger.With(slog.String("component", "api_handler")),
	}
}

// HealthLive — liveness probe (делегируется в HealthHandler).
func (h *APIHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	h.health.HealthLive(w, r)
}

// HealthReady — readiness probe (делегируется в HealthHandler).
func (h *APIHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	h.health.HealthReady(w, r)
}

// GetMetrics — Prometheus метрики (делегируется в HealthHandler).
func (h *APIHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.health.GetMetrics(w, r)
}

// --- Вспомогательные функции ---

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeServiceError переводит ошибку сервисного слоя в HTTP-ответ.
// ErrSessionRejected дополнительно очищает session cookie: backend
// отклонил токен, и клиент должен заново пройти логин.
func (h *APIHandler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrSessionRejected):
		h.sessions.ClearCookie(w)
		apierrors.Unauthorized(w, "Сессия отклонена, требуется повторный вход")
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidRole):
		apierrors.ValidationError(w, err.Error())
	case errors.Is(err, service.ErrNotFound):
		apierrors.NotFound(w, fallback)
	case errors.Is(err, service.ErrConflict):
		apierrors.Conflict(w, err.Error())
	case errors.Is(err, service.ErrBackendUnavailable):
		apierrors.BackendUnavailable(w, "Backend недоступен, попробуйте позже")
	default:
		h.logger.Error("Необработанная ошибка сервисного слоя", "error", err)
		apierrors.InternalError(w, fallback)
	}
}
