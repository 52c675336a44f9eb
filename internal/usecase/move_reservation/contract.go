package move_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	"github.com/m04kA/SRS-RoomReservationService/internal/integrations/campusservice"
	"github.com/m04kA/SRS-RoomReservationService/internal/integrations/periodcalendar"
	"github.com/m04kA/SRS-RoomReservationService/internal/service/reservations/models"
)

// ReservationEngine интерфейс движка бронирований
type ReservationEngine interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Move(ctx context.Context, params models.MoveParams) (*domain.Reservation, error)
}

// CampusServiceClient интерфейс клиента для CampusService
type CampusServiceClient interface {
	GetRoom(ctx context.Context, roomID int64) (*campusservice.Room, error)
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// PeriodCalendarClient интерфейс клиента календаря звонков
type PeriodCalendarClient interface {
	ResolvePeriods(ctx context.Context, date time.Time, tokens []string) ([]*periodcalendar.Period, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
