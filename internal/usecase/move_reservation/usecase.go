package move_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	campusClient "github.com/m04kA/SRS-RoomReservationService/internal/integrations/campusservice"
	calendarClient "github.com/m04kA/SRS-RoomReservationService/internal/integrations/periodcalendar"
	"github.com/m04kA/SRS-RoomReservationService/internal/service/reservations"
	"github.com/m04kA/SRS-RoomReservationService/internal/service/reservations/models"
)

// UseCase use case для переноса бронирования
type UseCase struct {
	engine         ReservationEngine
	campusClient   CampusServiceClient
	calendarClient PeriodCalendarClient
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	engine ReservationEngine,
	campusClient CampusServiceClient,
	calendarClient PeriodCalendarClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		engine:         engine,
		campusClient:   campusClient,
		calendarClient: calendarClient,
		logger:         logger,
	}
}

// Execute выполняет use case переноса бронирования. Перенос атомарен:
// если целевая ячейка занята, бронирование остается на прежнем месте.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MoveReservation: user=%d, reservation=%d, newRoom=%d, periods=%q",
		req.UserID, req.ReservationID, req.NewRoomID, req.PeriodExpr)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.NewRoomID == 0 && req.PeriodExpr == "" {
		return nil, fmt.Errorf("%w: nothing to change", ErrInvalidInput)
	}

	res, err := uc.engine.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservations.ErrReservationNotFound) {
			uc.logger.Warn("MoveReservation: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("MoveReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	if !res.IsOwnedBy(req.UserID) {
		isAdmin, err := uc.campusClient.IsAdmin(ctx, req.UserID)
		if err != nil {
			uc.logger.Error("MoveReservation: failed to check admin rights for user id=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: failed to check permissions: %v", ErrInternal, err)
		}
		if !isAdmin {
			uc.logger.Warn("MoveReservation: user id=%d is not allowed to move reservation id=%d",
				req.UserID, req.ReservationID)
			return nil, ErrPermissionDenied
		}
	}

	// Целевая аудитория: при нулевом NewRoomID остается текущая
	newRoomID := res.RoomID
	newRoomName := res.RoomName
	if req.NewRoomID != 0 && req.NewRoomID != res.RoomID {
		room, err := uc.campusClient.GetRoom(ctx, req.NewRoomID)
		if err != nil {
			if errors.Is(err, campusClient.ErrRoomNotFound) {
				uc.logger.Warn("MoveReservation: room id=%d not found", req.NewRoomID)
				return nil, ErrRoomNotFound
			}
			uc.logger.Error("MoveReservation: failed to get room id=%d: %v", req.NewRoomID, err)
			return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
		}
		newRoomID = room.ID
		newRoomName = room.Name
	}

	// Целевые периоды: при пустом выражении остаются текущие
	newPeriods := res.Periods
	if req.PeriodExpr != "" {
		newPeriods, err = domain.NormalizePeriodExpression(req.PeriodExpr)
		if err != nil {
			uc.logger.Warn("MoveReservation: invalid period expression %q: %v", req.PeriodExpr, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	resolved, err := uc.calendarClient.ResolvePeriods(ctx, res.Date, newPeriods)
	if err != nil {
		if errors.Is(err, calendarClient.ErrPeriodNotFound) || errors.Is(err, calendarClient.ErrDayNotFound) {
			uc.logger.Warn("MoveReservation: periods %v not scheduled on %s",
				newPeriods, res.Date.Format(domain.DateFormat))
			return nil, fmt.Errorf("%w: %v", ErrUnknownPeriod, err)
		}
		uc.logger.Error("MoveReservation: failed to resolve periods: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve periods: %v", ErrInternal, err)
	}

	span := calendarClient.BuildSpan(resolved)

	moved, err := uc.engine.Move(ctx, models.MoveParams{
		ReservationID:  req.ReservationID,
		NewRoomID:      newRoomID,
		NewRoomName:    newRoomName,
		NewPeriods:     newPeriods,
		NewStartTime:   span.StartTime,
		NewEndTime:     span.EndTime,
		NewPeriodLabel: span.Label,
	})
	if err != nil {
		if errors.Is(err, reservations.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		// Конфликт занятости пробрасывается без обертки
		return nil, err
	}

	uc.logger.Info("MoveReservation: successfully moved reservation id=%d to room=%d periods=%v",
		moved.ID, moved.RoomID, moved.Periods)

	return &Response{
		ID:          moved.ID,
		RoomID:      moved.RoomID,
		RoomName:    moved.RoomName,
		Title:       moved.Title,
		OwnerName:   moved.OwnerName,
		Date:        moved.Date,
		Periods:     moved.Periods,
		PeriodLabel: moved.PeriodLabel,
		StartTime:   moved.StartTime,
		EndTime:     moved.EndTime,
		CreatedBy:   moved.CreatedBy,
		CreatedAt:   moved.CreatedAt,
	}, nil
}
