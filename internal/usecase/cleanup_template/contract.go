package cleanup_template

import (
	"context"
	"time"

	"github.com/m04kA/SRS-RoomReservationService/internal/service/reservations/models"
)

// ReservationEngine интерфейс движка бронирований
type ReservationEngine interface {
	CleanupTemplate(ctx context.Context, templateID int64, from, to *time.Time, removeLocks, removeOccurrences bool) (models.CleanupResult, error)
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
