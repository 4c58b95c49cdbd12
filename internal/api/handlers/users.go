// users.go — обработчики /api/v1/users endpoints.
// Управление стандартными пользователями: список, получение, создание.
// Создание запускает на стороне backend отправку активационной ссылки.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/fileportal/portal-module/internal/api/errors"
	"github.com/bigkaa/fileportal/portal-module/internal/backend"
	"github.com/bigkaa/fileportal/portal-module/internal/domain/listquery"
	"github.com/bigkaa/fileportal/portal-module/internal/service"
)

// defaultUsersQuery — параметры таблицы пользователей по умолчанию.
var defaultUsersQuery = listquery.New(8, "username", listquery.DirAsc)

// ListUsers — GET /api/v1/users.
// Параметры: page, size, sortBy, direction, companyId, active.
func (h *APIHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := listquery.Parse(r.URL.Query(), defaultUsersQuery, service.UserFilterNames()...)

	page, err := h.users.List(r.Context(), q)
	if err != nil {
		h.writeServiceError(w, err, "Ошибка получения списка пользователей")
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// GetUser — GET /api/v1/users/{id}.
func (h *APIHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		apierrors.ValidationError(w, "Некорректный идентификатор пользователя")
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "Пользователь не найден")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// createUserRequest — тело запроса создания пользователя.
// Роль передаётся вместе с регистрационными данными.
type createUserRequest struct {
	backend.UserRegistration
	Role string `json:"role"`
}

// CreateUser — POST /api/v1/users.
func (h *APIHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	user, err := h.users.Create(r.Context(), req.UserRegistration, req.Role)
	if err != nil {
		h.writeServiceError(w, err, "Ошибка создания пользователя")
		return
	}

	writeJSON(w, http.StatusCreated, user)
}
