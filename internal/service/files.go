// files.go — сервис реестра файлов.
// Список — серверная пагинация с кэшем; скачивание — presigned URL
// per-file; загрузка — multipart к backend с построением пути
// {company}/{product}/{DDMONYYYY} и корреляционным ID для логов.
package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bigkaa/fileportal/portal-module/internal/backend"
	"github.com/bigkaa/fileportal/portal-module/internal/domain/listquery"
	"github.com/bigkaa/fileportal/portal-module/internal/domain/model"
	"github.com/bigkaa/fileportal/portal-module/internal/listcache"
)

// uploadDateLayout — формат датного сегмента пути загрузки (20JAN2026).
const uploadDateLayout = "02Jan2006"

// FileService — сервис реестра файлов.
type FileService struct {
	client *backend.Client
	cache  *listcache.Cache
	logger *slog.Logger
	// now — источник времени (подменяется в тестах)
	now func() time.Time
}

// NewFileService создаёт сервис файлов.
func NewFileService(client *backend.Client, cache *listcache.Cache, logger *slog.Logger) *FileService {
	return &FileService{
		client: client,
		cache:  cache,
		logger: logger.With(slog.String("component", "file_service")),
		now:    time.Now,
	}
}

// FileFilterNames возвращает допустимые имена фильтров таблицы файлов.
// Фильтр productId зависит от companyId: смена компании сбрасывает продукт.
func FileFilterNames() []string {
	return []string{"companyId", "productId", "fileType", "status"}
}

// FileFilterDependents возвращает зависимости фильтров таблицы файлов.
func FileFilterDependents(name string) []string {
	if name == "companyId" {
		return []string{"productId"}
	}
	return nil
}

// List возвращает страницу реестра файлов.
func (s *FileService) List(ctx context.Context, q listquery.Query) (*model.Page[model.FileRecord], error) {
	key := q.Key()
	if cached, ok := s.cache.Get(listcache.EntityFiles, key); ok {
		if page, ok := cached.(*model.Page[model.FileRecord]); ok {
			return page, nil
		}
	}

	page, err := s.client.ListFiles(ctx, q)
	if err != nil {
		return nil, MapBackendError(err)
	}

	s.cache.Set(listcache.EntityFiles, key, page)
	return page, nil
}

// DownloadLink запрашивает presigned URL для скачивания файла.
// Байты файла не проходят через portal-module: клиент скачивает
// напрямую из объектного хранилища по возвращённой ссылке.
func (s *FileService) DownloadLink(ctx context.Context, record *model.FileRecord) (string, error) {
	if record.FilePath == "" {
		return "", &PresignError{FileName: record.FileName, Err: ErrValidation}
	}

	url, err := s.client.PresignDownload(ctx, record.FilePath)
	if err != nil {
		mapped := MapBackendError(err)
		s.logger.Error("Не удалось получить presigned URL",
			slog.String("file", record.FileName),
			slog.String("key", record.FilePath),
			slog.String("error", err.Error()),
		)
		return "", &PresignError{FileName: record.FileName, Err: mapped}
	}

	return url, nil
}

// UploadInput — параметры загрузки файла от клиента.
type UploadInput struct {
	// FileName — имя выбранного файла
	FileName string
	// CompanyID, CompanyName — компания назначения
	CompanyID   int64
	CompanyName string
	// ProductID, ProductName — продукт назначения
	ProductID   int64
	ProductName string
	// FileType — тип файла (COLLECTION, REPORT)
	FileType string
	// Content — содержимое файла
	Content io.Reader
}

// Upload загружает файл через backend и инвалидирует кэш реестра.
// Путь в хранилище строится как {company}/{product}/{DDMONYYYY}
// из текущей даты UTC.
func (s *FileService) Upload(ctx context.Context, in UploadInput) (*model.FileRecord, error) {
	if in.FileName == "" || in.CompanyID == 0 || in.ProductID == 0 || in.Content == nil {
		return nil, ErrValidation
	}
	if in.FileType != model.FileTypeCollection && in.FileType != model.FileTypeReport {
		return nil, fmt.Errorf("%w: неизвестный тип файла %q", ErrValidation, in.FileType)
	}

	path := BuildUploadPath(in.CompanyName, in.ProductName, s.now().UTC())

	// Корреляционный ID связывает записи логов одной загрузки
	uploadID := uuid.New().String()
	s.logger.Info("Загрузка файла начата",
		slog.String("upload_id", uploadID),
		slog.String("file", in.FileName),
		slog.String("path", path),
		slog.Int64("company_id", in.CompanyID),
		slog.Int64("product_id", in.ProductID),
	)

	record, err := s.client.UploadFile(ctx, backend.UploadRequest{
		FileName:  in.FileName,
		Path:      path,
		CompanyID: in.CompanyID,
		ProductID: in.ProductID,
		FileType:  in.FileType,
		Content:   in.Content,
	})
	if err != nil {
		s.logger.Error("Загрузка файла не удалась",
			slog.String("upload_id", uploadID),
			slog.String("file", in.FileName),
			slog.String("error", err.Error()),
		)
		return nil, MapBackendError(err)
	}

	s.cache.Invalidate(listcache.EntityFiles)
	s.logger.Info("Загрузка файла завершена",
		slog.String("upload_id", uploadID),
		slog.Int64("record_id", record.ID),
		slog.String("status", record.Status),
	)

	return record, nil
}

// BuildUploadPath строит путь объекта в хранилище:
// {COMPANY}/{PRODUCT}/{DDMONYYYY}, например ACME/EHS/20JAN2026.
// Сегменты приводятся к верхнему регистру, пробелы убираются.
func BuildUploadPath(company, product string, date time.Time) string {
	return fmt.Sprintf("%s/%s/%s",
		pathSegment(company),
		pathSegment(product),
		strings.ToUpper(date.Format(uploadDateLayout)),
	)
}

// pathSegment нормализует сегмент пути хранилища.
func pathSegment(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "_")
}
