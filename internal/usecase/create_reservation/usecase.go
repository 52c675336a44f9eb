package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	campusClient "github.com/m04kA/SRS-RoomReservationService/internal/integrations/campusservice"
	calendarClient "github.com/m04kA/SRS-RoomReservationService/internal/integrations/periodcalendar"
	"github.com/m04kA/SRS-RoomReservationService/internal/service/reservations/models"
)

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования.
// Запись бронирования и все слоты его периодов создаются атомарно:
// конфликт в любой ячейке откатывает операцию целиком.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, room=%d, date=%s, periods=%q",
		req.UserID, req.RoomID, req.Date.Format(domain.DateFormat), req.PeriodExpr)

	// 1. Валидация и нормализация выражения периодов
	periods, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование аудитории
	room, err := uc.campusClient.GetRoom(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, campusClient.ErrRoomNotFound) {
			uc.logger.Warn("CreateReservation: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CreateReservation: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	// 3. Разрешаем токены периодов через календарь звонков на эту дату
	resolved, err := uc.calendarClient.ResolvePeriods(ctx, req.Date, periods)
	if err != nil {
		if errors.Is(err, calendarClient.ErrPeriodNotFound) || errors.Is(err, calendarClient.ErrDayNotFound) {
			uc.logger.Warn("CreateReservation: periods %v not scheduled on %s",
				periods, req.Date.Format(domain.DateFormat))
			return nil, fmt.Errorf("%w: %v", ErrUnknownPeriod, err)
		}
		uc.logger.Error("CreateReservation: failed to resolve periods: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve periods: %v", ErrInternal, err)
	}

	span := calendarClient.BuildSpan(resolved)

	// 4. Создаем бронирование атомарно со слотами
	created, err := uc.engine.Create(ctx, models.CreateParams{
		RoomID:      req.RoomID,
		RoomName:    room.Name,
		Title:       req.Title,
		OwnerName:   req.OwnerName,
		Date:        req.Date,
		Periods:     periods,
		StartTime:   span.StartTime,
		EndTime:     span.EndTime,
		PeriodLabel: span.Label,
		CreatedBy:   req.UserID,
	})
	if err != nil {
		// Конфликт занятости и детали валидации пробрасываются без обертки
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", created.ID)

	return &Response{
		ID:          created.ID,
		RoomID:      created.RoomID,
		RoomName:    created.RoomName,
		Title:       created.Title,
		OwnerName:   created.OwnerName,
		Date:        created.Date,
		Periods:     created.Periods,
		PeriodLabel: created.PeriodLabel,
		StartTime:   created.StartTime,
		EndTime:     created.EndTime,
		CreatedBy:   created.CreatedBy,
		CreatedAt:   created.CreatedAt,
	}, nil
}
