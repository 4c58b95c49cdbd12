// Пакет navigation — дерево навигации портала с фильтрацией по ролям.
//
// Дерево статично: двухуровневое меню с разрешёнными ролями на каждом
// узле. Visible возвращает копию дерева, отфильтрованную для роли
// пользователя; скрытый родитель скрывает и всех потомков.
package navigation

import (
	"slices"

	"github.com/bigkaa/fileportal/portal-module/internal/domain/rbac"
)

// Item — узел дерева навигации.
type Item struct {
	// Title — отображаемое название пункта меню
	Title string `json:"title"`
	// Path — маршрут SPA
	Path string `json:"path"`
	// AllowedRoles — роли, которым пункт виден
	AllowedRoles []string `json:"-"`
	// Children — вложенные пункты (один уровень вложенности)
	Children []Item `json:"children,omitempty"`
}

// allRoles — все роли портала.
var allRoles = []string{rbac.RoleAdmin, rbac.RoleInternalUser, rbac.RoleExternalUser, rbac.RoleStandardUser}

// tree — полное дерево навигации портала.
var tree = []Item{
	{
		Title:        "Dashboard",
		Path:         "/dashboard",
		AllowedRoles: allRoles,
	},
	{
		Title:        "Users",
		Path:         "/users",
		AllowedRoles: []string{rbac.RoleAdmin},
	},
	{
		Title:        "Company",
		Path:         "/company",
		AllowedRoles: []string{rbac.RoleAdmin},
	},
	{
		Title:        "Products",
		Path:         "/products",
		AllowedRoles: []string{rbac.RoleAdmin, rbac.RoleInternalUser},
	},
	{
		Title:        "File Management",
		Path:         "/files",
		AllowedRoles: allRoles,
		Children: []Item{
			{
				Title:        "Upload",
				Path:         "/files/upload",
				AllowedRoles: allRoles,
			},
			{
				Title:        "Download",
				Path:         "/files/download",
				AllowedRoles: allRoles,
			},
		},
	},
}

// allowed проверяет, разрешён ли пункт для роли.
func (i Item) allowed(role string) bool {
	return slices.Contains(i.AllowedRoles, role)
}

// Visible возвращает дерево навигации, видимое пользователю с ролью role.
// Потомки скрытого родителя не попадают в результат независимо от
// собственных AllowedRoles.
func Visible(role string) []Item {
	return filter(tree, role)
}

// filter рекурсивно фильтрует уровень дерева по роли.
func filter(items []Item, role string) []Item {
	visible := make([]Item, 0, len(items))
	for _, item := range items {
		if !item.allowed(role) {
			continue
		}
		item.Children = filter(item.Children, role)
		visible = append(visible, item)
	}
	return visible
}

// PathAllowed проверяет, доступен ли маршрут роли.
// Используется middleware ролевой защиты маршрутов.
func PathAllowed(role, path string) bool {
	return pathAllowed(tree, role, path)
}

func pathAllowed(items []Item, role, path string) bool {
	for _, item := range items {
		if item.Path == path {
			return item.allowed(role)
		}
		if pathAllowed(item.Children, role, path) {
			// Потомок найден и разрешён — родитель тоже должен быть виден
			return item.allowed(role)
		}
	}
	return false
}
