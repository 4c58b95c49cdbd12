// companies.go — сервис компаний.
// Backend не поддерживает пагинацию списка компаний, поэтому здесь
// используется клиентская стратегия: полный список запрашивается один
// раз (и кэшируется), страницы/сортировка/фильтры строятся локально
// через listquery.Apply. Приемлемо при сотнях компаний; при росте
// до десятков тысяч стратегию нужно менять на серверную.
package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bigkaa/fileportal/portal-module/internal/backend"
	"github.com/bigkaa/fileportal/portal-module/internal/domain/listquery"
	"github.com/bigkaa/fileportal/portal-module/internal/domain/model"
	"github.com/bigkaa/fileportal/portal-module/internal/listcache"
)

// companyListKey — ключ полного списка компаний в кэше.
const companyListKey = "all"

// companyDescriptor — колонки и фильтры таблицы компаний.
var companyDescriptor = listquery.Descriptor[model.Company]{
	Sorters: map[string]listquery.LessFunc[model.Company]{
		"name":        func(a, b model.Company) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) },
		"city":        func(a, b model.Company) bool { return strings.ToLower(a.City) < strings.ToLower(b.City) },
		"country":     func(a, b model.Company) bool { return strings.ToLower(a.Country) < strings.ToLower(b.Country) },
		"status":      func(a, b model.Company) bool { return a.Status < b.Status },
		"createdDate": func(a, b model.Company) bool { return a.CreatedDate < b.CreatedDate },
		"id":          func(a, b model.Company) bool { return a.ID < b.ID },
	},
	Filters: map[string]listquery.FilterFunc[model.Company]{
		"status": func(c model.Company, value string) bool {
			return c.Status == value
		},
		"country": func(c model.Company, value string) bool {
			return strings.EqualFold(c.Country, value)
		},
		"search": func(c model.Company, value string) bool {
			needle := strings.ToLower(value)
			return strings.Contains(strings.ToLower(c.Name), needle) ||
				strings.Contains(strings.ToLower(c.Email), needle)
		},
	},
}

// CompanyService — сервис компаний.
type CompanyService struct {
	client *backend.Client
	cache  *listcache.Cache
	logger *slog.Logger
}

// NewCompanyService создаёт сервис компаний.
func NewCompanyService(client *backend.Client, cache *listcache.Cache, logger *slog.Logger) *CompanyService {
	return &CompanyService{
		client: client,
		cache:  cache,
		logger: logger.With(slog.String("component", "company_service")),
	}
}

// CompanyFilterNames возвращает допустимые имена фильтров таблицы компаний.
func CompanyFilterNames() []string {
	return []string{"status", "country", "search"}
}

// CompanyListResult — страница компаний с дополнительным счётчиком.
type CompanyListResult struct {
	model.Page[model.Company]
	// TotalUnfiltered — размер списка до фильтров: UI различает
	// "компаний нет" и "ничего не подошло под фильтры"
	TotalUnfiltered int `json:"totalUnfiltered"`
}

// List возвращает страницу компаний по списочному запросу.
func (s *CompanyService) List(ctx context.Context, q listquery.Query) (*CompanyListResult, error) {
	companies, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	result := listquery.Apply(companies, q, companyDescriptor)
	return &CompanyListResult{
		Page:            result.Page,
		TotalUnfiltered: result.TotalUnfiltered,
	}, nil
}

// All возвращает полный список компаний (для выпадающих списков форм).
func (s *CompanyService) All(ctx context.Context) ([]model.Company, error) {
	return s.fetchAll(ctx)
}

// Get возвращает компанию по идентификатору из полного списка.
func (s *CompanyService) Get(ctx context.Context, id int64) (*model.Company, error) {
	companies, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range companies {
		if companies[i].ID == id {
			return &companies[i], nil
		}
	}
	return nil, ErrNotFound
}

// fetchAll возвращает полный список компаний, используя кэш.
func (s *CompanyService) fetchAll(ctx context.Context) ([]model.Company, error) {
	if cached, ok := s.cache.Get(listcache.EntityCompanies, companyListKey); ok {
		if companies, ok := cached.([]model.Company); ok {
			return companies, nil
		}
	}

	companies, err := s.client.ListCompanies(ctx)
	if err != nil {
		return nil, MapBackendError(err)
	}

	s.cache.Set(listcache.EntityCompanies, companyListKey, companies)
	s.logger.Debug("Список компаний обновлён из backend",
		slog.Int("count", len(companies)),
	)

	return companies, nil
}

// Create регистрирует новую компанию и инвалидирует кэш списка.
func (s *CompanyService) Create(ctx context.Context, reg backend.CompanyRegistration) (*model.Company, error) {
	if reg.Name == "" || reg.Email == "" || reg.City == "" || reg.Country == "" {
		return nil, ErrValidation
	}

	company, err := s.client.CreateCompany(ctx, reg)
	if err != nil {
		return nil, MapBackendError(err)
	}

	s.cache.Invalidate(listcache.EntityCompanies)
	s.logger.Info("Компания зарегистрирована",
		slog.Int64("company_id", company.ID),
		slog.String("name", company.Name),
	)

	return company, nil
}
