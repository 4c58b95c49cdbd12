// products.go — операции с продуктами (серверная пагинация).
package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bigkaa/fileportal/portal-module/internal/domain/listquery"
	"github.com/bigkaa/fileportal/portal-module/internal/domain/model"
)

// ListProducts возвращает страницу продуктов.
// GET /product?page=N&size=M&sortBy=...&direction=... — требует авторизации.
// Фильтр companyId передаётся backend как query-параметр.
func (c *Client) ListProducts(ctx context.Context, q listquery.Query) (*model.Page[model.Product], error) {
	resp, err := c.do(ctx, http.MethodGet, "/product?"+listValues(q).Encode(), nil)
	if err != nil {
		return nil, err
	}

	var page model.Page[model.Product]
	if err := decodeResponse(resp, &page); err != nil {
		return nil, fmt.Errorf("ListProducts: %w", err)
	}

	return &page, nil
}

// ProductRegistration — данные нового продукта.
type ProductRegistration struct {
	CompanyID   int64  `json:"companyId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ShortCode   string `json:"shortCode"`
	LongCode    string `json:"longCode"`
}

// CreateProduct создаёт продукт компании.
// POST /product — требует роли ADMIN или INTERNAL_USER на стороне backend.
func (c *Client) CreateProduct(ctx context.Context, reg ProductRegistration) (*model.Product, error) {
	resp, err := c.do(ctx, http.MethodPost, "/product", reg)
	if err != nil {
		return nil, err
	}

	var product model.Product
	if err := decodeResponse(resp, &product); err != nil {
		return nil, fmt.Errorf("CreateProduct: %w", err)
	}

	return &product, nil
}
