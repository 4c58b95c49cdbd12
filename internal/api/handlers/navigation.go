// navigation.go — обработчик дерева навигации.
// Меню фильтруется по роли пользователя из сессии; то же дерево
// используется middleware для защиты маршрутов.
package handlers

import (
	"net/http"

	apierrors "github.com/bigkaa/fileportal/portal-module/internal/api/errors"
	"github.com/bigkaa/fileportal/portal-module/internal/navigation"
	"github.com/bigkaa/fileportal/portal-module/internal/session"
)

// Navigation — GET /api/v1/navigation.
// Возвращает пункты меню, видимые роли текущего пользователя.
func (h *APIHandler) Navigation(w http.ResponseWriter, r *http.Request) {
	data := session.FromContext(r.Context())
	if data == nil {
		apierrors.Unauthorized(w, "Требуется аутентификация")
		return
	}

	writeJSON(w, http.StatusOK, navigation.Visible(data.Role))
}
