package create_template

import (
	"context"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	"github.com/m04kA/SRS-RoomReservationService/internal/integrations/campusservice"
	"github.com/m04kA/SRS-RoomReservationService/internal/service/templates/models"
)

// TemplateService интерфейс сервиса шаблонов
type TemplateService interface {
	Create(ctx context.Context, params models.CreateParams) (*domain.WeeklyTemplate, error)
}

// CampusServiceClient интерфейс клиента для CampusService
type CampusServiceClient interface {
	GetRoom(ctx context.Context, roomID int64) (*campusservice.Room, error)
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
