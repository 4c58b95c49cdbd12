package model

// Тип файла в реестре.
const (
	// FileTypeCollection — файл сбора данных
	FileTypeCollection = "COLLECTION"
	// FileTypeReport — файл отчёта
	FileTypeReport = "REPORT"
)

// Статус обработки файла.
const (
	// FileStatusUploaded — файл загружен
	FileStatusUploaded = "UPLOADED"
	// FileStatusProcessing — файл в обработке
	FileStatusProcessing = "PROCESSING"
	// FileStatusFailed — обработка завершилась ошибкой
	FileStatusFailed = "FAILED"
)

// FileRecord — запись файла в реестре backend.
// Portal-module только читает записи и запрашивает presigned URL;
// изменение записей — исключительно через загрузку.
type FileRecord struct {
	// ID — идентификатор записи
	ID int64 `json:"id"`
	// FileName — имя файла
	FileName string `json:"fileName"`
	// FilePath — путь к объекту в хранилище (ключ для presign)
	FilePath string `json:"filePath"`
	// FileSize — размер файла в байтах (backend отдаёт строкой)
	FileSize string `json:"fileSize"`
	// FileRecords — количество записей в файле
	FileRecords int `json:"fileRecords"`
	// CompanyID — идентификатор компании
	CompanyID int64 `json:"companyId"`
	// CompanyName — название компании (опционально)
	CompanyName *string `json:"companyName"`
	// ProductID — идентификатор продукта
	ProductID int64 `json:"productId"`
	// ProductName — название продукта (опционально)
	ProductName *string `json:"productName"`
	// FileType — тип файла (COLLECTION, REPORT)
	FileType string `json:"fileType"`
	// Status — статус обработки (UPLOADED, PROCESSING, FAILED)
	Status string `json:"status"`
	// Message — сообщение обработчика (опционально)
	Message *string `json:"message"`
	// UploadDate — дата загрузки (ISO 8601)
	UploadDate string `json:"uploadDate"`
	// UploadUserID — идентификатор загрузившего пользователя
	UploadUserID int64 `json:"uploadUserId"`
}
