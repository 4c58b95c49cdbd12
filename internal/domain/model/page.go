// page.go — обобщённая страница результатов списочных запросов.
// Формат соответствует пагинации backend REST API (content + счётчики).
package model

// Page — страница результатов с пагинацией.
// Инвариант: TotalPages == ceil(TotalElements / PageSize) при PageSize > 0,
// PageNumber ∈ [0, TotalPages-1] либо TotalPages == 0.
type Page[T any] struct {
	// Content — элементы текущей страницы (порядок сохраняется)
	Content []T `json:"content"`
	// TotalElements — общее количество элементов во всей выборке
	TotalElements int `json:"totalElements"`
	// TotalPages — общее количество страниц
	TotalPages int `json:"totalPages"`
	// Number — номер текущей страницы (0-based)
	Number int `json:"number"`
	// Size — размер страницы
	Size int `json:"size"`
	// First — первая ли это страница
	First bool `json:"first"`
	// Last — последняя ли это страница
	Last bool `json:"last"`
	// NumberOfElements — количество элементов на текущей странице
	NumberOfElements int `json:"numberOfElements"`
	// Empty — пустая ли страница
	Empty bool `json:"empty"`
}

// NewPage создаёт страницу из содержимого и счётчиков, вычисляя
// производные поля (TotalPages, First, Last) по инварианту.
// pageSize <= 0 приводится к 1, pageNumber < 0 — к 0.
func NewPage[T any](content []T, totalElements, pageNumber, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = 1
	}
	if pageNumber < 0 {
		pageNumber = 0
	}
	if totalElements < 0 {
		totalElements = 0
	}

	totalPages := (totalElements + pageSize - 1) / pageSize

	return Page[T]{
		Content:          content,
		TotalElements:    totalElements,
		TotalPages:       totalPages,
		Number:           pageNumber,
		Size:             pageSize,
		First:            pageNumber == 0,
		Last:             totalPages == 0 || pageNumber == totalPages-1,
		NumberOfElements: len(content),
		Empty:            len(content) == 0,
	}
}
