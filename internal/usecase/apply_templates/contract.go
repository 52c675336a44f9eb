package apply_templates

import (
	"context"
	"time"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	"github.com/m04kA/SRS-RoomReservationService/internal/integrations/campusservice"
	"github.com/m04kA/SRS-RoomReservationService/internal/integrations/periodcalendar"
	resmodels "github.com/m04kA/SRS-RoomReservationService/internal/service/reservations/models"
)

// TemplateService интерфейс сервиса шаблонов
type TemplateService interface {
	List(ctx context.Context, filter domain.TemplateFilter) ([]*domain.WeeklyTemplate, error)
}

// ReservationEngine интерфейс движка бронирований
type ReservationEngine interface {
	Create(ctx context.Context, params resmodels.CreateParams) (*domain.Reservation, error)
	Move(ctx context.Context, params resmodels.MoveParams) (*domain.Reservation, error)
	DeleteSnapshot(ctx context.Context, res *domain.Reservation) error
	PlaceLock(ctx context.Context, templateID, roomID int64, roomName string, date time.Time, periods []string, createdBy int64) error
	Occupant(ctx context.Context, roomID int64, date time.Time, period string) (*resmodels.Occupant, error)
}

// SlotRepository интерфейс хранилища слотов для поиска свободных аудиторий
type SlotRepository interface {
	ListOccupiedRooms(ctx context.Context, date time.Time, period string, roomIDs []int64) ([]int64, error)
}

// CampusServiceClient интерфейс клиента для CampusService
type CampusServiceClient interface {
	ListRooms(ctx context.Context) ([]*campusservice.Room, error)
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// PeriodCalendarClient интерфейс клиента календаря звонков
type PeriodCalendarClient interface {
	ResolvePeriods(ctx context.Context, date time.Time, tokens []string) ([]*periodcalendar.Period, error)
}

// AuditSink приемник записей о разрешенных конфликтах
type AuditSink interface {
	RecordConflict(ctx context.Context, info domain.ConflictInfo)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
