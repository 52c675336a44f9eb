package get_room_reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	"github.com/m04kA/SRS-RoomReservationService/pkg/types"
)

var (
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("get_room_reservations: invalid input data")

	// ErrInternal внутренняя ошибка usecase
	ErrInternal = errors.New("get_room_reservations: internal error")
)

// Reservation элемент списка бронирований аудитории
type Reservation struct {
	ID          int64
	Title       string
	OwnerName   string
	Periods     []string
	PeriodLabel string
	StartTime   types.TimeString
	EndTime     types.TimeString
	TemplateID  *int64
	CreatedBy   int64
}

// Response модель ответа со списком бронирований аудитории на дату
type Response struct {
	RoomID       int64
	Date         time.Time
	Reservations []Reservation
}

// UseCase use case для получения бронирований аудитории на дату
type UseCase struct {
	engine ReservationEngine
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(engine ReservationEngine, logger Logger) *UseCase {
	return &UseCase{
		engine: engine,
		logger: logger,
	}
}

// Execute выполняет use case получения бронирований аудитории
func (uc *UseCase) Execute(ctx context.Context, roomID int64, date time.Time) (*Response, error) {
	if roomID <= 0 {
		return nil, fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	list, err := uc.engine.ListByRoomDate(ctx, domain.RoomDayFilter{RoomID: roomID, Date: date})
	if err != nil {
		uc.logger.Error("GetRoomReservations: failed to list reservations for room=%d date=%s: %v",
			roomID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	resp := &Response{
		RoomID:       roomID,
		Date:         date,
		Reservations: make([]Reservation, 0, len(list)),
	}
	for _, res := range list {
		resp.Reservations = append(resp.Reservations, Reservation{
			ID:          res.ID,
			Title:       res.Title,
			OwnerName:   res.OwnerName,
			Periods:     res.Periods,
			PeriodLabel: res.PeriodLabel,
			StartTime:   res.StartTime,
			EndTime:     res.EndTime,
			TemplateID:  res.TemplateID,
			CreatedBy:   res.CreatedBy,
		})
	}

	return resp, nil
}
