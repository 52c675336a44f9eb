package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Reservation, error)
	ListByRoomDate(ctx context.Context, filter domain.RoomDayFilter) ([]*domain.Reservation, error)
	ListByTemplate(ctx context.Context, templateID int64, from, to *time.Time) ([]*domain.Reservation, error)
	Update(ctx context.Context, res *domain.Reservation) error
	Delete(ctx context.Context, id int64) error
	DeleteByTemplate(ctx context.Context, templateID int64, from, to *time.Time) (int64, error)
}

// SlotRepository интерфейс репозитория слотов (таблицы владения ячейками)
type SlotRepository interface {
	GetForKeys(ctx context.Context, roomID int64, date time.Time, periods []string) ([]*domain.Slot, error)
	Get(ctx context.Context, key domain.SlotKey) (*domain.Slot, error)
	Insert(ctx context.Context, slots []*domain.Slot) error
	DeleteByKeys(ctx context.Context, roomID int64, date time.Time, periods []string) error
	DeleteByReservation(ctx context.Context, reservationID int64) error
	DeleteByTemplate(ctx context.Context, templateID int64, kind *domain.SlotKind, from, to *time.Time) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями.
// Реализация обязана обеспечивать снапшот-изоляцию и прозрачный повтор
// при конфликте фиксации; вызывающий видит только итоговый результат.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
