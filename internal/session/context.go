package session

import "context"

// ctxKey — неэкспортируемый тип ключа контекста.
type ctxKey struct{}

// WithData кладёт данные сессии в контекст запроса.
func WithData(ctx context.Context, data *Data) context.Context {
	return context.WithValue(ctx, ctxKey{}, data)
}

// FromContext извлекает данные сессии из контекста.
// Возвращает nil если сессии нет (анонимный запрос).
func FromContext(ctx context.Context) *Data {
	data, _ := ctx.Value(ctxKey{}).(*Data)
	return data
}
