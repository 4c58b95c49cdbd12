package model

// User — стандартный пользователь портала.
type User struct {
	// ID — идентификатор пользователя
	ID int64 `json:"id"`
	// CompanyID — идентификатор компании пользователя
	CompanyID int64 `json:"companyId"`
	// Username — логин
	Username string `json:"username"`
	// FirstName — имя (опционально)
	FirstName *string `json:"firstName"`
	// MiddleName — отчество/среднее имя (опционально)
	MiddleName *string `json:"middleName"`
	// LastName — фамилия (опционально)
	LastName *string `json:"lastName"`
	// Address — адрес (опционально)
	Address *string `json:"address"`
	// City — город (опционально)
	City *string `json:"city"`
	// State — штат/регион (опционально)
	State *string `json:"state"`
	// Country — страна (опционально)
	Country *string `json:"country"`
	// ZipCode — почтовый индекс (опционально)
	ZipCode *string `json:"zipCode"`
	// Phone — телефон (опционально)
	Phone *string `json:"phone"`
	// Email — электронная почта
	Email string `json:"email"`
	// Active — активирована ли учётная запись
	Active bool `json:"active"`
	// CreatedAt — дата создания (ISO 8601)
	CreatedAt string `json:"createdAt"`
	// TokenStatus — статус активационного токена (ACTIVE, EXPIRED)
	TokenStatus string `json:"tokenStatus"`
	// TokenExpiresAt — срок действия активационного токена (ISO 8601)
	TokenExpiresAt string `json:"tokenExpiresAt"`
}
