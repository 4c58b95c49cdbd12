// companies.go — обработчики /api/v1/companies endpoints.
// Список с клиентской пагинацией, полный список для форм,
// получение по ID, регистрация новой компании.
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

// defaultCompaniesQuery — параметры таблицы компаний по умолчанию.
var defaultCompaniesQuery = listquery.New(8, "name", listquery.DirAsc)

// ListCompanies — GET /api/v1/companies.
// Параметры: page, size, sortBy, direction, status, country, search.
func (h *APIHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	q := listquery.Parse(r.URL.Query(), defaultCompaniesQuery, service.CompanyFilterNames()...)

	result, err := h.companies.List(r.Context(), q)
	if err != nil {
		h.writeServiceError(w, err, "Ошибка получения списка компаний")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// AllCompanies — GET /api/v1/companies/all.
// Полный список без пагинации — для выпадающих списков форм.
func (h *APIHandler) AllCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.companies.All(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "Ошибка получения списка компаний")
		return
	}

	writeJSON(w, http.StatusOK, companies)
}

// GetCompany — GET /api/v1/companies/{id}.
func (h *APIHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		apierrors.ValidationError(w, "Некорректный идентификатор компании")
		return
	}

	company, err := h.companies.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "Компания не найдена")
		return
	}

	writeJSON(w, http.StatusOK, company)
}

// CreateCompany — POST /api/v1/companies.
// Регистрирует новую компанию через backend.
func (h *APIHandler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var reg backend.CompanyRegistration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	company, err := h.companies.Create(r.Context(), reg)
	if err != nil {
		h.writeServiceError(w, err, "Ошибка регистрации компании")
		return
	}

	writeJSON(w, http.StatusCreated, company)
}
