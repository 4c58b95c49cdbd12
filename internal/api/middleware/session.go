// session.go — middleware сессионной аутентификации портала.
// Расшифровывает session cookie, проверяет срок действия и (опционально)
// подпись bearer-токена backend, помещает сессию в контекст запроса.
// Любой отказ — очистка cookie и JSON 401: клиент уходит на страницу логина.
package middleware

import (
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/fileportal/portal-module/internal/api/errors"
	"github.com/bigkaa/fileportal/portal-module/internal/domain/rbac"
	"github.com/bigkaa/fileportal/portal-module/internal/navigation"
	"github.com/bigkaa/fileportal/portal-module/internal/session"
)

// SessionAuth — middleware сессионной аутентификации.
type SessionAuth struct {
	manager *session.Manager
	// validator — опциональная проверка подписи токена через JWKS backend
	validator *TokenValidator
	logger    *slog.Logger
}

// NewSessionAuth создаёт middleware сессионной аутентификации.
// validator может быть nil — тогда подпись токена не проверяется
// (backend проверит её сам на первом проксируемом запросе).
func NewSessionAuth(manager *session.Manager, validator *TokenValidator, logger *slog.Logger) *SessionAuth {
	return &SessionAuth{
		manager:   manager,
		validator: validator,
		logger:    logger.With(slog.String("component", "session_auth")),
	}
}

// Middleware возвращает HTTP middleware, требующий действующую сессию.
// Отсутствующая, нечитаемая или истёкшая сессия — 401 с очисткой cookie.
func (s *SessionAuth) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := s.manager.FromRequest(r)
			if err != nil {
				// Cookie не расшифровался (смена ключа, повреждение)
				s.logger.Debug("сессия не расшифрована",
					slog.String("error", err.Error()),
					slog.String("remote_addr", r.RemoteAddr),
				)
				s.reject(w, "Сессия недействительна")
				return
			}
			if data == nil {
				apierrors.Unauthorized(w, "Требуется аутентификация")
				return
			}
			if data.IsExpired() {
				s.reject(w, "Сессия истекла")
				return
			}

			if s.validator != nil {
				if err := s.validator.Validate(r.Context(), data.Token); err != nil {
					s.logger.Debug("подпись токена сессии не прошла проверку",
						slog.String("error", err.Error()),
						slog.String("username", data.Username),
					)
					s.reject(w, "Токен сессии недействителен")
					return
				}
			}

			// Привязка записи access-журнала к пользователю сессии
			markActor(r.Context(), data.Username, data.Role)

			next.ServeHTTP(w, r.WithContext(session.WithData(r.Context(), data)))
		})
	}
}

// reject очищает cookie и отвечает 401.
func (s *SessionAuth) reject(w http.ResponseWriter, message string) {
	s.manager.ClearCookie(w)
	apierrors.Unauthorized(w, message)
}

// RequireRole возвращает middleware, требующий одну из указанных ролей.
// Должен использоваться ПОСЛЕ Middleware().
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data := session.FromContext(r.Context())
			if data == nil {
				apierrors.Unauthorized(w, "Отсутствует сессия в контексте")
				return
			}

			for _, role := range roles {
				if data.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			apierrors.Forbidden(w, "Недостаточно прав для этой операции")
		})
	}
}

// RequireNavPath возвращает middleware, проверяющий доступ роли к маршруту
// по дереву навигации. Единый источник правды для меню и защиты маршрутов.
// Должен использоваться ПОСЛЕ Middleware().
func RequireNavPath(navPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data := session.FromContext(r.Context())
			if data == nil {
				apierrors.Unauthorized(w, "Отсутствует сессия в контексте")
				return
			}

			if !rbac.IsValidRole(data.Role) || !navigation.PathAllowed(data.Role, navPath) {
				apierrors.Forbidden(w, "Недостаточно прав для этой операции")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
