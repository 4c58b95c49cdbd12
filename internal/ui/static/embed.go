// Пакет static — встроенная оболочка SPA портала.
// index.html и ассеты встраиваются в бинарник через //go:embed:
// portal-module раздаёт клиентское приложение сам, без отдельного
// веб-сервера. Все не-API маршруты получают index.html — дальнейшей
// маршрутизацией занимается SPA.
package static

import (
	"embed"
	"net/http"
)

//go:embed index.html assets
var content embed.FS

// FileSystem возвращает http.FileSystem для раздачи /assets/*.
func FileSystem() http.FileSystem {
	return http.FS(content)
}

// SPAHandler возвращает обработчик fallback-маршрутов SPA:
// любой GET отдаёт index.html, прочие методы — 404.
func SPAHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.NotFound(w, r)
			return
		}

		index, err := content.ReadFile("index.html")
		if err != nil {
			http.Error(w, "index.html не найден", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(index)
	}
}
