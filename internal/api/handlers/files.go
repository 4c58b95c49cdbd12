// files.go — обработчики /api/v1/files endpoints.
// Реестр файлов, presigned ссылки на скачивание и multipart-загрузка.
// Байты файлов при скачивании через portal-module не проходят.
package handlers

import (
	"net/http"
	"strconv"

	apierrors "github.com/bigkaa/fileportal/portal-module/internal/api/errors"
	"github.com/bigkaa/fileportal/portal-module/internal/domain/listquery"
	"github.com/bigkaa/fileportal/portal-module/internal/domain/model"
	"github.com/bigkaa/fileportal/portal-module/internal/service"
)

// maxUploadFormMemory — лимит памяти при разборе multipart-формы,
// остальное уходит во временные файлы.
const maxUploadFormMemory = 32 << 20

// defaultFilesQuery — параметры таблицы файлов по умолчанию:
// свежие загрузки сверху.
var defaultFilesQuery = listquery.New(8, "uploadDate", listquery.DirDesc)

// ListFiles — GET /api/v1/files.
// Параметры: page, size, sortBy, direction, companyId, productId,
// fileType, status.
func (h *APIHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	q := listquery.Parse(r.URL.Query(), defaultFilesQuery, service.FileFilterNames()...)

	// productId зависит от companyId: без выбранной компании
	// фильтр продукта не применяется
	if q.Filter("companyId") == "" {
		for _, dep := range service.FileFilterDependents("companyId") {
			if q.Filter(dep) != "" {
				q.SetFilter(dep, "")
			}
		}
	}

	page, err := h.files.List(r.Context(), q)
	if err != nil {
		h.writeServiceError(w, err, "Ошибка получения реестра файлов")
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// downloadLinkResponse — presigned URL для скачивания одного файла.
type downloadLinkResponse struct {
	URL string `json:"url"`
}

// DownloadLink — GET /api/v1/files/download-link?key=...&name=...
// Возвращает presigned URL объектного хранилища: клиент скачивает
// файл напрямую, мимо portal-module.
func (h *APIHandler) DownloadLink(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	name := r.URL.Query().Get("name")
	if key == "" {
		apierrors.ValidationError(w, "Не указан ключ файла")
		return
	}

	url, err := h.files.DownloadLink(r.Context(), &model.FileRecord{
		FileName: name,
		FilePath: key,
	})
	if err != nil {
		h.writeServiceError(w, err, "Не удалось получить ссылку для файла "+name)
		return
	}

	writeJSON(w, http.StatusOK, downloadLinkResponse{URL: url})
}

// UploadFile — POST /api/v1/files/upload.
// Multipart-форма: file, companyId, companyName, productId, productName,
// fileType. Путь в хранилище строится на стороне сервиса.
func (h *APIHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadFormMemory); err != nil {
		apierrors.ValidationError(w, "Некорректная multipart-форма: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		apierrors.ValidationError(w, "Файл не передан")
		return
	}
	defer file.Close()

	companyID, _ := strconv.ParseInt(r.FormValue("companyId"), 10, 64)
	productID, _ := strconv.ParseInt(r.FormValue("productId"), 10, 64)

	record, err := h.files.Upload(r.Context(), service.UploadInput{
		FileName:    header.Filename,
		CompanyID:   companyID,
		CompanyName: r.FormValue("companyName"),
		ProductID:   productID,
		ProductName: r.FormValue("productName"),
		FileType:    r.FormValue("fileType"),
		Content:     file,
	})
	if err != nil {
		h.writeServiceError(w, err, "Ошибка загрузки файла")
		return
	}

	writeJSON(w, http.StatusCreated, record)
}
