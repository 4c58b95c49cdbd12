// logging.go — access-журнал portal-module.
// Каждый запрос к порталу получает запись в журнале; запрос, выполненный
// в рамках расшифрованной сессии, привязывается к пользователю.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// accessWriter перехватывает статус и объём ответа для access-журнала.
type accessWriter struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (w *accessWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *accessWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += int64(n)
	return n, err
}

// Unwrap открывает оригинальный ResponseWriter для http.ResponseController.
func (w *accessWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// requestActor — пользователь, выполняющий запрос. Заполняется
// session-middleware после расшифровки cookie; access-журнал читает
// его по завершении запроса.
type requestActor struct {
	username string
	role     string
}

type actorKey struct{}

// markActor привязывает запрос к пользователю сессии.
// Вне цепочки RequestLogger вызов безопасен и ничего не делает.
func markActor(ctx context.Context, username, role string) {
	if actor, ok := ctx.Value(actorKey{}).(*requestActor); ok {
		actor.username = username
		actor.role = role
	}
}

// RequestLogger возвращает middleware access-журнала портала:
// метод, путь, статус, длительность, объём ответа, remote_addr и,
// для сессионных запросов, username и role пользователя.
// Уровень записи по статусу ответа: INFO до 400, WARN 4xx, ERROR 5xx.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	accessLog := logger.With(slog.String("component", "http_access"))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			actor := &requestActor{}
			wrapped := &accessWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(wrapped, r.WithContext(context.WithValue(r.Context(), actorKey{}, actor)))

			level := slog.LevelInfo
			switch {
			case wrapped.status >= 500:
				level = slog.LevelError
			case wrapped.status >= 400:
				level = slog.LevelWarn
			}

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", wrapped.status),
				slog.Duration("duration", time.Since(start)),
				slog.Int64("response_bytes", wrapped.bytes),
				slog.String("remote_addr", r.RemoteAddr),
			}
			if actor.username != "" {
				attrs = append(attrs,
					slog.String("username", actor.username),
					slog.String("role", actor.role),
				)
			}

			accessLog.LogAttrs(r.Context(), level, "Запрос к порталу", attrs...)
		})
	}
}
