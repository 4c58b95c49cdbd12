// users.go — сервис стандартных пользователей (серверная пагинация).
// Создание пользователя запускает на стороне backend отправку
// активационной ссылки на email.
package service

import (
	"context"
	"log/slog"

	"github.com/bigkaa/fileportal/portal-module/internal/backend"
	"github.com/bigkaa/fileportal/portal-module/internal/domain/listquery"
	"github.com/bigkaa/fileportal/portal-module/internal/domain/model"
	"github.com/bigkaa/fileportal/portal-module/internal/domain/rbac"
	"github.com/bigkaa/fileportal/portal-module/internal/listcache"
)

// UserService — сервис стандартных пользователей.
type UserService struct {
	client *backend.Client
	cache  *listcache.Cache
	logger *slog.Logger
}

// NewUserService создаёт сервис пользователей.
func NewUserService(client *backend.Client, cache *listcache.Cache, logger *slog.Logger) *UserService {
	return &UserService{
		client: client,
		cache:  cache,
		logger: logger.With(slog.String("component", "user_service")),
	}
}

// UserFilterNames возвращает допустимые имена фильтров таблицы пользователей.
func UserFilterNames() []string {
	return []string{"companyId", "active"}
}

// List возвращает страницу стандартных пользователей.
func (s *UserService) List(ctx context.Context, q listquery.Query) (*model.Page[model.User], error) {
	key := q.Key()
	if cached, ok := s.cache.Get(listcache.EntityUsers, key); ok {
		if page, ok := cached.(*model.Page[model.User]); ok {
			return page, nil
		}
	}

	page, err := s.client.ListStandardUsers(ctx, q)
	if err != nil {
		return nil, MapBackendError(err)
	}

	s.cache.Set(listcache.EntityUsers, key, page)
	return page, nil
}

// Get возвращает пользователя по идентификатору.
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.client.GetUser(ctx, id)
	if err != nil {
		return nil, MapBackendError(err)
	}
	return user, nil
}

// Create создаёт стандартного пользователя с указанной ролью
// и инвалидирует кэш списка пользователей.
func (s *UserService) Create(ctx context.Context, reg backend.UserRegistration, role string) (*model.User, error) {
	if reg.Username == "" || reg.Email == "" || reg.CompanyID == 0 {
		return nil, ErrValidation
	}
	if !rbac.IsValidRole(role) {
		return nil, ErrInvalidRole
	}

	user, err := s.client.CreateStandardUser(ctx, reg, role)
	if err != nil {
		return nil, MapBackendError(err)
	}

	s.cache.Invalidate(listcache.EntityUsers)
	s.logger.Info("Стандартный пользователь создан, активационная ссылка отправлена",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
		slog.String("role", role),
	)

	return user, nil
}
