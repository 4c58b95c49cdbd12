// companies.go — операции с компаниями.
// Backend отдаёт компании единым списком без пагинации;
// страницы и сортировку поверх списка строит сервисный слой.
package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bigkaa/fileportal/portal-module/internal/domain/model"
)

// ListCompanies возвращает все компании.
// GET /company — требует авторизации.
func (c *Client) ListCompanies(ctx context.Context) ([]model.Company, error) {
	resp, err := c.do(ctx, http.MethodGet, "/company", nil)
	if err != nil {
		return nil, err
	}

	var companies []model.Company
	if err := decodeResponse(resp, &companies); err != nil {
		return nil, fmt.Errorf("ListCompanies: %w", err)
	}

	return companies, nil
}

// CompanyRegistration — данные регистрации новой компании.
type CompanyRegistration struct {
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
	City    string  `json:"city"`
	State   *string `json:"state,omitempty"`
	Country string  `json:"country"`
	ZipCode *string `json:"zipCode,omitempty"`
	Email   string  `json:"email"`
}

// CreateCompany регистрирует новую компанию.
// POST /company/register-company — требует роли ADMIN на стороне backend.
func (c *Client) CreateCompany(ctx context.Context, reg CompanyRegistration) (*model.Company, error) {
	resp, err := c.do(ctx, http.MethodPost, "/company/register-company", reg)
	if err != nil {
		return nil, err
	}

	var company model.Company
	if err := decodeResponse(resp, &company); err != nil {
		return nil, fmt.Errorf("CreateCompany: %w", err)
	}

	return &company, nil
}
