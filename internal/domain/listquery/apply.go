// apply.go — клиентская стратегия пагинации поверх over-fetch.
//
// Представление один раз запрашивает у backend большую страницу, после чего
// фильтрация/сортировка/пагинация выполняются локально. Экономит повторные
// round trip при дешёвых фильтрах, но НЕ масштабируется на неограниченные
// коллекции backend — применять только там, где backend не поддерживает
// нужные фильтры на сервере.
package listquery

import (
	"sort"

	"github.com/bigkaa/fileportal/portal-module/internal/domain/model"
)

// FilterFunc — предикат фильтра: подходит ли элемент под выбранное значение.
type FilterFunc[T any] func(item T, value string) bool

// LessFunc — компаратор сортировки по возрастанию.
type LessFunc[T any] func(a, b T) bool

// Descriptor — декларативное описание колонок и фильтров представления.
// Одно описание на сущность устраняет дрейф поведения между копиями таблиц.
type Descriptor[T any] struct {
	// Sorters — компараторы по ключу сортировки
	Sorters map[string]LessFunc[T]
	// Filters — предикаты по имени фильтра
	Filters map[string]FilterFunc[T]
}

// Result — результат клиентской пагинации.
type Result[T any] struct {
	// Page — страница после фильтрации/сортировки/нарезки
	Page model.Page[T]
	// TotalUnfiltered — размер выборки до применения фильтров.
	// Позволяет UI различать "записей нет вообще" и "ничего не подошло
	// под текущие фильтры".
	TotalUnfiltered int
}

// Apply применяет Query к уже полученной выборке: фильтры, сортировка,
// нарезка страницы. Исходный срез не модифицируется.
func Apply[T any](items []T, q Query, d Descriptor[T]) Result[T] {
	// Фильтрация
	filtered := items
	if len(q.Filters) > 0 {
		filtered = make([]T, 0, len(items))
		for _, item := range items {
			if matchesFilters(item, q, d) {
				filtered = append(filtered, item)
			}
		}
	}

	// Сортировка (стабильная — сохраняет порядок backend при равных ключах)
	if less, ok := d.Sorters[q.SortKey]; ok {
		sorted := make([]T, len(filtered))
		copy(sorted, filtered)
		sort.SliceStable(sorted, func(i, j int) bool {
			if q.SortDir == DirDesc {
				return less(sorted[j], sorted[i])
			}
			return less(sorted[i], sorted[j])
		})
		filtered = sorted
	}

	// Нарезка страницы
	page := q.Page
	start := page * q.Size
	if start >= len(filtered) {
		// Запрошенная страница за пределами выборки — пустое содержимое,
		// счётчики остаются корректными
		return Result[T]{
			Page:            model.NewPage([]T{}, len(filtered), page, q.Size),
			TotalUnfiltered: len(items),
		}
	}
	end := start + q.Size
	if end > len(filtered) {
		end = len(filtered)
	}

	content := make([]T, end-start)
	copy(content, filtered[start:end])

	return Result[T]{
		Page:            model.NewPage(content, len(filtered), page, q.Size),
		TotalUnfiltered: len(items),
	}
}

// matchesFilters проверяет элемент по всем активным фильтрам запроса.
// Фильтр без зарегистрированного предиката игнорируется.
func matchesFilters[T any](item T, q Query, d Descriptor[T]) bool {
	for name, value := range q.Filters {
		pred, ok := d.Filters[name]
		if !ok {
			continue
		}
		if !pred(item, value) {
			return false
		}
	}
	return true
}
