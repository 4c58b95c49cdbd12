// products.go — обработчики /api/v1/products endpoints.
// Серверная пагинация: каждая страница запрашивается у backend отдельно.
package handlers

import (
	"encoding/json"
	"net/http"

	apierrors "github.com/bigkaa/fileportal/portal-module/internal/api/errors"
	"github.com/bigkaa/fileportal/portal-module/internal/backend"
	"github.com/bigkaa/fileportal/portal-module/internal/domain/listquery"
	"github.com/bigkaa/fileportal/portal-module/internal/service"
)

// defaultProductsQuery — параметры таблицы продуктов по умолчанию.
var defaultProductsQuery = listquery.New(8, "name", listquery.DirAsc)

// ListProducts — GET /api/v1/products.
// Параметры: page, size, sortBy, direction, companyId, status.
func (h *APIHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := listquery.Parse(r.URL.Query(), defaultProductsQuery, service.ProductFilterNames()...)

	page, err := h.products.List(r.Context(), q)
	if err != nil {
		h.writeServiceError(w, err, "Ошибка получения списка продуктов")
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// CreateProduct — POST /api/v1/products.
func (h *APIHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var reg backend.ProductRegistration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	product, err := h.products.Create(r.Context(), reg)
	if err != nil {
		h.writeServiceError(w, err, "Ошибка создания продукта")
		return
	}

	writeJSON(w, http.StatusCreated, product)
}
