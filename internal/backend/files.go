// files.go — операции с реестром файлов и объектным хранилищем.
// Скачивание — через presigned URL от backend: байты файла не проходят
// через portal-module. Загрузка — multipart POST с метаданными.
package backend

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bigkaa/fileportal/portal-module/internal/domain/listquery"
	"github.com/bigkaa/fileportal/portal-module/internal/domain/model"
)

// ListFiles возвращает страницу реестра файлов.
// GET /files?page=N&size=M&... — требует авторизации.
// Фильтры companyId, productId, fileType передаются backend как есть.
func (c *Client) ListFiles(ctx context.Context, q listquery.Query) (*model.Page[model.FileRecord], error) {
	resp, err := c.do(ctx, http.MethodGet, "/files?"+listValues(q).Encode(), nil)
	if err != nil {
		return nil, err
	}

	var page model.Page[model.FileRecord]
	if err := decodeResponse(resp, &page); err != nil {
		return nil, fmt.Errorf("ListFiles: %w", err)
	}

	return &page, nil
}

// presignResponse — ответ backend с presigned URL.
type presignResponse struct {
	URL string `json:"url"`
}

// PresignDownload запрашивает presigned URL для скачивания объекта.
// GET /s3/files/presign-download?key=... — требует авторизации.
// key — путь объекта в хранилище (FileRecord.FilePath).
func (c *Client) PresignDownload(ctx context.Context, key string) (string, error) {
	path := "/s3/files/presign-download?key=" + url.QueryEscape(key)

	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}

	var presign presignResponse
	if err := decodeResponse(resp, &presign); err != nil {
		return "", fmt.Errorf("PresignDownload: %w", err)
	}
	if presign.URL == "" {
		return "", fmt.Errorf("PresignDownload: backend вернул пустой URL")
	}

	return presign.URL, nil
}

// UploadRequest — параметры загрузки файла.
type UploadRequest struct {
	// FileName — имя файла (как выбрано пользователем)
	FileName string
	// Path — целевой путь в хранилище ({company}/{product}/{DDMONYYYY})
	Path string
	// CompanyID, ProductID — привязка записи реестра
	CompanyID int64
	ProductID int64
	// FileType — тип файла (COLLECTION, REPORT)
	FileType string
	// Content — содержимое файла
	Content io.Reader
}

// UploadFile загружает файл в хранилище через backend.
// POST /s3/files/upload (multipart/form-data) — требует авторизации.
// Тело запроса стримится через io.Pipe, файл не буферизуется в памяти.
func (c *Client) UploadFile(ctx context.Context, up UploadRequest) (*model.FileRecord, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := writeUploadForm(mw, up)
		if cerr := mw.Close(); err == nil {
			err = cerr
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/s3/files/upload", pr)
	if err != nil {
		return nil, fmt.Errorf("создание запроса UploadFile: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if err := c.authorize(ctx, req); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("запрос UploadFile к backend: %w", err)
	}

	var record model.FileRecord
	if err := decodeResponse(resp, &record); err != nil {
		return nil, fmt.Errorf("UploadFile: %w", err)
	}

	return &record, nil
}

// writeUploadForm пишет поля multipart-формы загрузки.
func writeUploadForm(mw *multipart.Writer, up UploadRequest) error {
	fields := map[string]string{
		"path":      up.Path,
		"companyId": strconv.FormatInt(up.CompanyID, 10),
		"productId": strconv.FormatInt(up.ProductID, 10),
		"fileType":  up.FileType,
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return fmt.Errorf("запись поля %s: %w", name, err)
		}
	}

	part, err := mw.CreateFormFile("file", up.FileName)
	if err != nil {
		return fmt.Errorf("создание части file: %w", err)
	}
	if _, err := io.Copy(part, up.Content); err != nil {
		return fmt.Errorf("копирование содержимого файла: %w", err)
	}

	return nil
}
