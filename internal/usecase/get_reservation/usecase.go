package get_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	"github.com/m04kA/SRS-RoomReservationService/internal/service/reservations"
	"github.com/m04kA/SRS-RoomReservationService/pkg/types"
)

// Response модель ответа с бронированием
type Response struct {
	ID          int64
	RoomID      int64
	RoomName    string
	Title       string
	OwnerName   string
	Date        time.Time
	Periods     []string
	PeriodLabel string
	StartTime   types.TimeString
	EndTime     types.TimeString
	TemplateID  *int64
	CreatedBy   int64
	CreatedAt   time.Time
}

// UseCase use case для получения бронирования по ID
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

// Execute выполняет use case получения бронирования
func (uc *UseCase) Execute(ctx context.Context, id int64) (*Response, error) {
	res, err := uc.engine.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservations.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("GetReservation: failed to get reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return toResponse(res), nil
}

func toResponse(res *domain.Reservation) *Response {
	return &Response{
		ID:          res.ID,
		RoomID:      res.RoomID,
		RoomName:    res.RoomName,
		Title:       res.Title,
		OwnerName:   res.OwnerName,
		Date:        res.Date,
		Periods:     res.Periods,
		PeriodLabel: res.PeriodLabel,
		StartTime:   res.StartTime,
		EndTime:     res.EndTime,
		TemplateID:  res.TemplateID,
		CreatedBy:   res.CreatedBy,
		CreatedAt:   res.CreatedAt,
	}
}
