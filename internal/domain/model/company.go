package model

// Company — компания (владелец продуктов и пользователей).
// Источник данных — backend, portal-module только читает и создаёт.
type Company struct {
	// ID — идентификатор компании
	ID int64 `json:"id"`
	// Name — название компании
	Name string `json:"name"`
	// Address — адрес (опционально)
	Address *string `json:"address"`
	// City — город
	City string `json:"city"`
	// State — штат/регион (опционально)
	State *string `json:"state"`
	// Country — страна
	Country string `json:"country"`
	// ZipCode — почтовый индекс (опционально)
	ZipCode *string `json:"zipCode"`
	// Email — контактный email
	Email string `json:"email"`
	// Status — статус компании (ACTIVE, INACTIVE)
	Status string `json:"status"`
	// CreatedDate — дата создания (ISO 8601, как отдаёт backend)
	CreatedDate string `json:"createdDate"`
	// CreatedBy — идентификатор создателя (опционально)
	CreatedBy *int64 `json:"createdBy"`
}
