package delete_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SRS-RoomReservationService/internal/api/handlers"
	"github.com/m04kA/SRS-RoomReservationService/internal/api/middleware"
	deleteReservation "github.com/m04kA/SRS-RoomReservationService/internal/usecase/delete_reservation"
)

const (
	msgInvalidID           = "некорректный идентификатор бронирования"
	msgReservationNotFound = "бронирование не найдено"
	msgPermissionDenied    = "удалять бронирование может только владелец или администратор"
	msgStorageBusy         = "хранилище перегружено, повторите попытку позже"
)

type Handler struct {
	useCase DeleteReservationUseCase
	logger  Logger
}

func NewHandler(useCase DeleteReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/reservations/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.useCase.Execute(r.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, deleteReservation.ErrReservationNotFound):
			h.logger.Warn("DELETE /reservations/{id} - Reservation not found: reservation_id=%d", id)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, deleteReservation.ErrPermissionDenied):
			h.logger.Warn("DELETE /reservations/{id} - Permission denied: reservation_id=%d, user_id=%d", id, userID)
			handlers.RespondForbidden(w, msgPermissionDenied)

		case errors.Is(err, deleteReservation.ErrRetriesExhausted):
			h.logger.Error("DELETE /reservations/{id} - Retries exhausted: reservation_id=%d, error=%v", id, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStorageBusy)

		default:
			h.logger.Error("DELETE /reservations/{id} - Failed to delete reservation: reservation_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reservations/{id} - Reservation deleted: reservation_id=%d, user_id=%d", id, userID)
	w.WriteHeader(http.StatusNoContent)
}
