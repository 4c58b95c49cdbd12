package model

// Product — продукт, привязанный к компании.
type Product struct {
	// ID — идентификатор продукта
	ID int64 `json:"id"`
	// CompanyID — идентификатор компании-владельца
	CompanyID int64 `json:"companyId"`
	// Name — название продукта
	Name string `json:"name"`
	// Description — описание
	Description string `json:"description"`
	// ShortCode — короткий код продукта
	ShortCode string `json:"shortCode"`
	// LongCode — длинный код продукта
	LongCode string `json:"longCode"`
	// Status — статус продукта (ACTIVE, INACTIVE)
	Status string `json:"status"`
	// CreateDate — дата создания (ISO 8601)
	CreateDate string `json:"createDate"`
	// CreatedBy — идентификатор создателя
	CreatedBy int64 `json:"createdBy"`
}
