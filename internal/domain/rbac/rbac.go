// Пакет rbac — роли пользователей портала и производные от них маршруты.
// Роли определяют только видимость UI и удобные редиректы; реальная
// авторизация выполняется backend на каждом запросе.
package rbac

// Роли в порядке убывания привилегий.
const (
	RoleAdmin        = "ADMIN"
	RoleInternalUser = "INTERNAL_USER"
	RoleExternalUser = "EXTERNAL_USER"
	RoleStandardUser = "STANDARD_USER"
)

// validRoles — множество допустимых ролей.
var validRoles = map[string]struct{}{
	RoleAdmin:        {},
	RoleInternalUser: {},
	RoleExternalUser: {},
	RoleStandardUser: {},
}

// IsValidRole проверяет, является ли строка допустимой ролью.
func IsValidRole(role string) bool {
	_, ok := validRoles[role]
	return ok
}

// LandingRoute возвращает маршрут, на который SPA перенаправляет
// пользователя после успешного логина.
func LandingRoute(role string) string {
	// Все роли приземляются на dashboard; разница в видимом меню
	return "/dashboard"
}

// LoginRoute возвращает страницу логина для роли.
// Используется после активации учётной записи.
func LoginRoute(role string) string {
	switch role {
	case RoleAdmin, RoleInternalUser:
		return "/login/admin"
	default:
		return "/login/user"
	}
}
