// activation.go — обработчики активации учётной записи.
// Публичные endpoints: валидация токена из активационной ссылки
// и установка пароля.
package handlers

import (
	"encoding/json"
	"net/http"

	apierrors "github.com/bigkaa/fileportal/portal-module/internal/api/errors"
	"github.com/bigkaa/fileportal/portal-module/internal/domain/authflow"
)

// activationCookieName — короткоживущий cookie с активационным токеном.
// Выставляется при открытии страницы активации по ссылке; форма установки
// пароля может отправляться без токена — он берётся из cookie.
const activationCookieName = "portal_activation"

// activationCookieMaxAge — время жизни активационного cookie (15 минут).
const activationCookieMaxAge = 15 * 60

// ValidateActivation — GET /api/v1/activation/validate?token=...
// Недействительный токен — не ошибка: возвращается valid=false
// с сообщением для пользователя.
func (h *APIHandler) ValidateActivation(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	outcome, err := h.activation.ValidateToken(r.Context(), token)
	if err != nil {
		h.writeServiceError(w, err, "Ошибка проверки активационной ссылки")
		return
	}

	if outcome.Valid {
		http.SetCookie(w, &http.Cookie{
			Name:     activationCookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   activationCookieMaxAge,
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})
	}

	writeJSON(w, http.StatusOK, outcome)
}

// setPasswordRequest — тело запроса установки пароля.
type setPasswordRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// SetActivationPassword — POST /api/v1/activation/password.
// Пароль проверяется локально; сообщения ошибок валидации
// предназначены пользователю и отдаются как есть.
func (h *APIHandler) SetActivationPassword(w http.ResponseWriter, r *http.Request) {
	var req setPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	// Форма без токена — берём его из активационного cookie
	if req.Token == "" {
		if cookie, cookieErr := r.Cookie(activationCookieName); cookieErr == nil {
			req.Token = cookie.Value
		}
	}

	outcome, err := h.activation.SetPassword(r.Context(), req.Token, req.Password, req.ConfirmPassword)
	if err != nil {
		if authflow.IsPasswordError(err) {
			apierrors.ValidationError(w, err.Error())
			return
		}
		h.writeServiceError(w, err, "Ошибка установки пароля")
		return
	}

	if outcome.Done {
		http.SetCookie(w, &http.Cookie{
			Name:     activationCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})
	}

	writeJSON(w, http.StatusOK, outcome)
}
