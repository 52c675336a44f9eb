package delete_template

import "context"

// TemplateService интерфейс сервиса шаблонов
type TemplateService interface {
	Delete(ctx context.Context, id int64) error
}

// CampusServiceClient интерфейс клиента для CampusService
type CampusServiceClient interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
