// Пакет listquery — состояние списочного запроса, общее для всех таблиц портала.
//
// Query хранит страницу, размер страницы, сортировку и фильтры.
// Переходы состояния:
//   - клик по заголовку колонки: тот же ключ — переворот направления,
//     новый ключ — сортировка по нему по возрастанию; страница не сбрасывается
//   - изменение фильтра: страница сбрасывается на 0, зависимые фильтры очищаются
//
// Две стратегии выборки: серверная пагинация (запрос ровно одной страницы)
// и клиентская пагинация поверх over-fetch (см. apply.go).
package listquery

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Направления сортировки.
const (
	DirAsc  = "asc"
	DirDesc = "desc"
)

// Query — состояние списочного запроса одного представления.
// Создаётся заново при открытии представления, мутируется действиями пользователя.
type Query struct {
	// Page — номер страницы (0-based)
	Page int
	// Size — размер страницы (> 0)
	Size int
	// SortKey — ключ сортировки (зависит от представления)
	SortKey string
	// SortDir — направление сортировки (asc, desc)
	SortDir string
	// Filters — выбранные значения фильтров (имя → значение)
	Filters map[string]string
}

// New создаёт Query с указанными значениями по умолчанию.
func New(size int, sortKey, sortDir string) Query {
	if size < 1 {
		size = 1
	}
	if sortDir != DirDesc {
		sortDir = DirAsc
	}
	return Query{
		Size:    size,
		SortKey: sortKey,
		SortDir: sortDir,
		Filters: make(map[string]string),
	}
}

// ToggleSort обрабатывает клик по заголовку колонки.
// Тот же ключ — переворот направления; новый ключ — сортировка по
// возрастанию. Номер страницы НЕ сбрасывается.
func (q *Query) ToggleSort(key string) {
	if key == q.SortKey {
		if q.SortDir == DirAsc {
			q.SortDir = DirDesc
		} else {
			q.SortDir = DirAsc
		}
		return
	}
	q.SortKey = key
	q.SortDir = DirAsc
}

// SetFilter устанавливает значение фильтра и сбрасывает страницу на 0.
// Пустое значение удаляет фильтр. dependents — имена зависимых фильтров,
// которые очищаются при изменении (например, смена компании сбрасывает
// фильтр продукта, так как продукты привязаны к компании).
func (q *Query) SetFilter(name, value string, dependents ...string) {
	if q.Filters == nil {
		q.Filters = make(map[string]string)
	}
	if value == "" {
		delete(q.Filters, name)
	} else {
		q.Filters[name] = value
	}
	for _, dep := range dependents {
		delete(q.Filters, dep)
	}
	q.Page = 0
}

// SetPage устанавливает номер страницы (отрицательные значения — 0).
func (q *Query) SetPage(page int) {
	if page < 0 {
		page = 0
	}
	q.Page = page
}

// Filter возвращает значение фильтра или пустую строку.
func (q *Query) Filter(name string) string {
	return q.Filters[name]
}

// Key возвращает канонический ключ запроса для кэширования результатов.
// Уникален для комбинации {page, size, sortKey, sortDir, filters};
// фильтры сериализуются в отсортированном по имени порядке.
func (q *Query) Key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "p%d|s%d|%s|%s", q.Page, q.Size, q.SortKey, q.SortDir)

	if len(q.Filters) > 0 {
		names := make([]string, 0, len(q.Filters))
		for name := range q.Filters {
			names = append(names, name)
		}
		sort.Strings(names)

		b.WriteByte('|')
		for i, name := range names {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(name)
			b.WriteByte('=')
			b.WriteString(q.Filters[name])
		}
	}

	return b.String()
}

// Parse восстанавливает Query из query string HTTP-запроса.
// defaults задаёт размер страницы и сортировку по умолчанию,
// filterNames — допустимые имена фильтров (прочие параметры игнорируются).
func Parse(values url.Values, defaults Query, filterNames ...string) Query {
	q := New(defaults.Size, defaults.SortKey, defaults.SortDir)

	if p, err := strconv.Atoi(values.Get("page")); err == nil && p >= 0 {
		q.Page = p
	}
	if s, err := strconv.Atoi(values.Get("size")); err == nil && s > 0 {
		q.Size = s
	}
	if sortKey := values.Get("sortBy"); sortKey != "" {
		q.SortKey = sortKey
	}
	if dir := values.Get("direction"); dir == DirAsc || dir == DirDesc {
		q.SortDir = dir
	}
	for _, name := range filterNames {
		if v := values.Get(name); v != "" {
			q.Filters[name] = v
		}
	}

	return q
}
