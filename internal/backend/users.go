// users.go — операции со стандартными пользователями (серверная пагинация).
package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bigkaa/fileportal/portal-module/internal/domain/listquery"
	"github.com/bigkaa/fileportal/portal-module/internal/domain/model"
)

// ListStandardUsers возвращает страницу стандартных пользователей.
// GET /api/admin/users/standard?page=N&size=M — требует роли ADMIN.
func (c *Client) ListStandardUsers(ctx context.Context, q listquery.Query) (*model.Page[model.User], error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/admin/users/standard?"+listValues(q).Encode(), nil)
	if err != nil {
		return nil, err
	}

	var page model.Page[model.User]
	if err := decodeResponse(resp, &page); err != nil {
		return nil, fmt.Errorf("ListStandardUsers: %w", err)
	}

	return &page, nil
}

// GetUser возвращает пользователя по идентификатору.
// GET /api/admin/users/standard/{id} — требует роли ADMIN.
func (c *Client) GetUser(ctx context.Context, id int64) (*model.User, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/admin/users/standard/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var user model.User
	if err := decodeResponse(resp, &user); err != nil {
		return nil, fmt.Errorf("GetUser: %w", err)
	}

	return &user, nil
}

// UserRegistration — данные нового стандартного пользователя.
type UserRegistration struct {
	CompanyID  int64   `json:"companyId"`
	Username   string  `json:"username"`
	FirstName  *string `json:"firstName,omitempty"`
	MiddleName *string `json:"middleName,omitempty"`
	LastName   *string `json:"lastName,omitempty"`
	Address    *string `json:"address,omitempty"`
	City       *string `json:"city,omitempty"`
	State      *string `json:"state,omitempty"`
	Country    *string `json:"country,omitempty"`
	ZipCode    *string `json:"zipCode,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Email      string  `json:"email"`
}

// CreateStandardUser создаёт стандартного пользователя с указанной ролью.
// POST /users/standard?role=... — требует роли ADMIN.
// Backend отправляет пользователю активационную ссылку на email.
func (c *Client) CreateStandardUser(ctx context.Context, reg UserRegistration, role string) (*model.User, error) {
	path := "/users/standard?role=" + url.QueryEscape(role)

	resp, err := c.do(ctx, http.MethodPost, path, reg)
	if err != nil {
		return nil, err
	}

	var user model.User
	if err := decodeResponse(resp, &user); err != nil {
		return nil, fmt.Errorf("CreateStandardUser: %w", err)
	}

	return &user, nil
}
