package delete_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SRS-RoomReservationService/internal/service/reservations"
)

// UseCase use case для удаления бронирования
type UseCase struct {
	engine       ReservationEngine
	campusClient CampusServiceClient
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(engine ReservationEngine, campusClient CampusServiceClient, logger Logger) *UseCase {
	return &UseCase{
		engine:       engine,
		campusClient: campusClient,
		logger:       logger,
	}
}

// Execute выполняет use case удаления бронирования.
// Удалять может владелец бронирования или администратор.
func (uc *UseCase) Execute(ctx context.Context, reservationID, userID int64) error {
	uc.logger.Info("DeleteReservation: user=%d, reservation=%d", userID, reservationID)

	res, err := uc.engine.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservations.ErrReservationNotFound) {
			uc.logger.Warn("DeleteReservation: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		uc.logger.Error("DeleteReservation: failed to get reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	if !res.IsOwnedBy(userID) {
		isAdmin, err := uc.campusClient.IsAdmin(ctx, userID)
		if err != nil {
			uc.logger.Error("DeleteReservation: failed to check admin rights for user id=%d: %v", userID, err)
			return fmt.Errorf("%w: failed to check permissions: %v", ErrInternal, err)
		}
		if !isAdmin {
			uc.logger.Warn("DeleteReservation: user id=%d is not allowed to delete reservation id=%d",
				userID, reservationID)
			return ErrPermissionDenied
		}
	}

	if err := uc.engine.DeleteSnapshot(ctx, res); err != nil {
		if errors.Is(err, reservations.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		if errors.Is(err, reservations.ErrRetriesExhausted) {
			uc.logger.Error("DeleteReservation: retries exhausted for reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: %v", ErrRetriesExhausted, err)
		}
		uc.logger.Error("DeleteReservation: failed to delete reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("DeleteReservation: successfully deleted reservation id=%d", reservationID)
	return nil
}
