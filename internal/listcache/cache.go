// Пакет listcache — LRU-кэш страниц списочных запросов с TTL.
// Обёртка над hashicorp/golang-lru/v2/expirable.
//
// Ключ кэша включает сущность, счётчик поколения и канонический ключ
// запроса (listquery.Query.Key). Инвалидация по сущности — инкремент
// поколения: старые записи перестают находиться и вытесняются LRU.
package listcache

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Кэшируемые сущности.
const (
	EntityCompanies = "companies"
	EntityProducts  = "products"
	EntityUsers     = "users"
	EntityFiles     = "files"
)

// Prometheus-метрики кэша.
var (
	cacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pm_list_cache_hits_total",
		Help: "Общее количество попаданий в LRU-кэш списочных запросов.",
	}, []string{"entity"})
	cacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pm_list_cache_misses_total",
		Help: "Общее количество промахов LRU-кэша списочных запросов.",
	}, []string{"entity"})
	cacheInvalidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pm_list_cache_invalidations_total",
		Help: "Общее количество инвалидаций кэша по сущностям.",
	}, []string{"entity"})
)

// Cache — LRU-кэш страниц списочных запросов с автоматическим TTL.
// Каждый экземпляр модуля имеет собственный in-memory кэш
// (per-instance, stateless архитектура).
type Cache struct {
	cache *expirable.LRU[string, any]
	// generations — счётчики поколений по сущностям
	generations map[string]*atomic.Int64
}

// New создаёт LRU-кэш с указанным максимальным размером и TTL.
// maxSize — максимальное количество записей в кэше.
// ttl — время жизни записи после добавления.
func New(maxSize int, ttl time.Duration) *Cache {
	generations := make(map[string]*atomic.Int64)
	for _, entity := range []string{EntityCompanies, EntityProducts, EntityUsers, EntityFiles} {
		generations[entity] = &atomic.Int64{}
	}

	return &Cache{
		cache:       expirable.NewLRU[string, any](maxSize, nil, ttl),
		generations: generations,
	}
}

// key строит полный ключ записи: сущность + поколение + ключ запроса.
func (c *Cache) key(entity, queryKey string) string {
	var gen int64
	if g, ok := c.generations[entity]; ok {
		gen = g.Load()
	}
	return fmt.Sprintf("%s:g%d:%s", entity, gen, queryKey)
}

// Get возвращает закэшированную страницу по сущности и ключу запроса.
// Возвращает (значение, true) при hit или (nil, false) при miss.
// Обновляет Prometheus-метрики hit/miss.
func (c *Cache) Get(entity, queryKey string) (any, bool) {
	val, ok := c.cache.Get(c.key(entity, queryKey))
	if ok {
		cacheHitsTotal.WithLabelValues(entity).Inc()
		return val, true
	}
	cacheMissesTotal.WithLabelValues(entity).Inc()
	return nil, false
}

// Set добавляет или обновляет страницу в кэше.
func (c *Cache) Set(entity, queryKey string, value any) {
	c.cache.Add(c.key(entity, queryKey), value)
}

// Invalidate сбрасывает все записи сущности инкрементом поколения.
// Вызывается после мутаций (создание компании, продукта, пользователя,
// загрузка файла): следующий запрос гарантированно пойдёт к backend.
func (c *Cache) Invalidate(entity string) {
	if g, ok := c.generations[entity]; ok {
		g.Add(1)
		cacheInvalidationsTotal.WithLabelValues(entity).Inc()
	}
}
