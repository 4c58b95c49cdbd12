// products.go — сервис продуктов (серверная пагинация).
// Backend поддерживает пагинацию, сортировку и фильтр companyId,
// поэтому каждая страница запрашивается отдельно и кэшируется
// по каноническому ключу запроса.
package service

import (
	"context"
	"log/slog"

	"github.com/bigkaa/fileportal/portal-module/internal/backend"
	"github.com/bigkaa/fileportal/portal-module/internal/domain/listquery"
	"github.com/bigkaa/fileportal/portal-module/internal/domain/model"
	"github.com/bigkaa/fileportal/portal-module/internal/listcache"
)

// ProductService — сервис продуктов.
type ProductService struct {
	client *backend.Client
	cache  *listcache.Cache
	logger *slog.Logger
}

// NewProductService создаёт сервис продуктов.
func NewProductService(client *backend.Client, cache *listcache.Cache, logger *slog.Logger) *ProductService {
	return &ProductService{
		client: client,
		cache:  cache,
		logger: logger.With(slog.String("component", "product_service")),
	}
}

// ProductFilterNames возвращает допустимые имена фильтров таблицы продуктов.
func ProductFilterNames() []string {
	return []string{"companyId", "status"}
}

// List возвращает страницу продуктов по списочному запросу.
func (s *ProductService) List(ctx context.Context, q listquery.Query) (*model.Page[model.Product], error) {
	key := q.Key()
	if cached, ok := s.cache.Get(listcache.EntityProducts, key); ok {
		if page, ok := cached.(*model.Page[model.Product]); ok {
			return page, nil
		}
	}

	page, err := s.client.ListProducts(ctx, q)
	if err != nil {
		return nil, MapBackendError(err)
	}

	s.cache.Set(listcache.EntityProducts, key, page)
	return page, nil
}

// Create создаёт продукт и инвалидирует кэш списка продуктов.
func (s *ProductService) Create(ctx context.Context, reg backend.ProductRegistration) (*model.Product, error) {
	if reg.Name == "" || reg.CompanyID == 0 || reg.ShortCode == "" {
		return nil, ErrValidation
	}

	product, err := s.client.CreateProduct(ctx, reg)
	if err != nil {
		return nil, MapBackendError(err)
	}

	s.cache.Invalidate(listcache.EntityProducts)
	s.logger.Info("Продукт создан",
		slog.Int64("product_id", product.ID),
		slog.Int64("company_id", product.CompanyID),
		slog.String("name", product.Name),
	)

	return product, nil
}
