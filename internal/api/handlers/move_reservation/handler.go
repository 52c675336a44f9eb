package move_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SRS-RoomReservationService/internal/api/handlers"
	"github.com/m04kA/SRS-RoomReservationService/internal/api/middleware"
	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	moveReservation "github.com/m04kA/SRS-RoomReservationService/internal/usecase/move_reservation"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidID           = "некорректный идентификатор бронирования"
	msgInvalidInput        = "некорректные параметры переноса"
	msgReservationNotFound = "бронирование не найдено"
	msgRoomNotFound        = "аудитория не найдена"
	msgUnknownPeriod       = "период отсутствует в расписании на эту дату"
	msgPermissionDenied    = "переносить бронирование может только владелец или администратор"
	msgSlotOccupied        = "целевая ячейка уже занята"
)

// SlotConflictResponse тело ответа при конфликте занятости
type SlotConflictResponse struct {
	Error  string `json:"error"`
	RoomID int64  `json:"roomId"`
	Date   string `json:"date"`
	Period string `json:"period"`
}

type Handler struct {
	useCase MoveReservationUseCase
	logger  Logger
}

func NewHandler(useCase MoveReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{id}/move
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req MoveReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/{id}/move - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &moveReservation.Request{
		UserID:        userID,
		ReservationID: id,
		NewRoomID:     req.RoomID,
		PeriodExpr:    req.Periods,
	})
	if err != nil {
		var occupied *moveReservation.SlotOccupiedError
		switch {
		case errors.As(err, &occupied):
			h.logger.Warn("POST /reservations/{id}/move - Slot occupied: reservation_id=%d, room_id=%d, period=%s",
				id, occupied.RoomID, occupied.Period)
			handlers.RespondJSON(w, http.StatusConflict, SlotConflictResponse{
				Error:  msgSlotOccupied,
				RoomID: occupied.RoomID,
				Date:   occupied.Date.Format(domain.DateFormat),
				Period: occupied.Period,
			})

		case errors.Is(err, moveReservation.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/move - Reservation not found: reservation_id=%d", id)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, moveReservation.ErrRoomNotFound):
			h.logger.Warn("POST /reservations/{id}/move - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, moveReservation.ErrPermissionDenied):
			h.logger.Warn("POST /reservations/{id}/move - Permission denied: reservation_id=%d, user_id=%d", id, userID)
			handlers.RespondForbidden(w, msgPermissionDenied)

		case errors.Is(err, moveReservation.ErrUnknownPeriod):
			h.logger.Warn("POST /reservations/{id}/move - Unknown period: reservation_id=%d, periods=%q", id, req.Periods)
			handlers.RespondBadRequest(w, msgUnknownPeriod)

		case errors.Is(err, moveReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations/{id}/move - Invalid input: reservation_id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations/{id}/move - Failed to move reservation: reservation_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/move - Reservation moved: reservation_id=%d, room_id=%d", id, result.RoomID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
