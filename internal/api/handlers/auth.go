// auth.go — обработчики аутентификации портала.
// Логин через форму admin или user, логаут, информация о текущей сессии.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/fileportal/portal-module/internal/api/errors"
	"github.com/bigkaa/fileportal/portal-module/internal/service"
	"github.com/bigkaa/fileportal/portal-module/internal/session"
)

// loginRequest — тело запроса логина.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse — ответ на успешный логин.
// Сообщение и пауза перед переходом отображаются на форме входа.
type loginResponse struct {
	Message             string `json:"message"`
	RedirectTo          string `json:"redirectTo"`
	RedirectDelayMillis int    `json:"redirectDelayMillis"`
}

// Login — POST /api/v1/auth/login/{portal}.
// portal — "admin" или "user"; роль пользователя должна соответствовать
// форме входа. Успех — установка зашифрованного session cookie.
func (h *APIHandler) Login(w http.ResponseWriter, r *http.Request) {
	portal := chi.URLParam(r, "portal")
	if portal != service.PortalAdmin && portal != service.PortalUser {
		apierrors.NotFound(w, "Неизвестный портал входа")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	outcome, err := h.auth.Login(r.Context(), portal, req.Username, req.Password)
	if err != nil {
		var loginErr *service.LoginError
		if errors.As(err, &loginErr) {
			// Текст loginErr.Message предназначен пользователю и не
			// раскрывает причину отказа
			if errors.Is(err, service.ErrBackendUnavailable) {
				apierrors.WriteError(w, http.StatusBadGateway, apierrors.CodeBackendUnavailable, loginErr.Message)
				return
			}
			apierrors.WriteError(w, http.StatusUnauthorized, apierrors.CodeUnauthorized, loginErr.Message)
			return
		}
		h.logger.Error("Ошибка логина", "error", err)
		apierrors.InternalError(w, "Ошибка входа")
		return
	}

	if err := h.sessions.SetCookie(w, outcome.Session); err != nil {
		h.logger.Error("Ошибка установки session cookie", "error", err)
		apierrors.InternalError(w, "Ошибка создания сессии")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Message:             outcome.Message,
		RedirectTo:          outcome.RedirectTo,
		RedirectDelayMillis: outcome.RedirectDelayMillis,
	})
}

// Logout — POST /api/v1/auth/logout.
// Очищает session cookie. Работает и без действующей сессии.
func (h *APIHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"redirectTo": "/login/user"})
}

// meResponse — информация о текущем пользователе сессии.
type meResponse struct {
	UserID    int64  `json:"userId"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
	CompanyID int64  `json:"companyId,omitempty"`
}

// Me — GET /api/v1/auth/me.
// Возвращает данные пользователя из расшифрованной сессии.
func (h *APIHandler) Me(w http.ResponseWriter, r *http.Request) {
	data := session.FromContext(r.Context())
	if data == nil {
		apierrors.Unauthorized(w, "Требуется аутентификация")
		return
	}

	writeJSON(w, http.StatusOK, meResponse{
		UserID:    data.UserID,
		Username:  data.Username,
		Email:     data.Email,
		Role:      data.Role,
		CompanyID: data.CompanyID,
	})
}
