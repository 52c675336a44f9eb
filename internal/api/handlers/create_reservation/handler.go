package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SRS-RoomReservationService/internal/api/handlers"
	"github.com/m04kA/SRS-RoomReservationService/internal/api/middleware"
	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	createReservation "github.com/m04kA/SRS-RoomReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные бронирования"
	msgRoomNotFound       = "аудитория не найдена"
	msgUnknownPeriod      = "период отсутствует в расписании на эту дату"
	msgSlotOccupied       = "ячейка уже занята"
)

// SlotConflictResponse тело ответа при конфликте занятости
type SlotConflictResponse struct {
	Error  string `json:"error"`
	RoomID int64  `json:"roomId"`
	Date   string `json:"date"`
	Period string `json:"period"`
}

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var occupied *createReservation.SlotOccupiedError
		switch {
		case errors.As(err, &occupied):
			h.logger.Warn("POST /reservations - Slot occupied: user_id=%d, room_id=%d, period=%s",
				userID, occupied.RoomID, occupied.Period)
			handlers.RespondJSON(w, http.StatusConflict, SlotConflictResponse{
				Error:  msgSlotOccupied,
				RoomID: occupied.RoomID,
				Date:   occupied.Date.Format(domain.DateFormat),
				Period: occupied.Period,
			})

		case errors.Is(err, createReservation.ErrRoomNotFound):
			h.logger.Warn("POST /reservations - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createReservation.ErrUnknownPeriod):
			h.logger.Warn("POST /reservations - Unknown period: user_id=%d, periods=%q", userID, req.Periods)
			handlers.RespondBadRequest(w, msgUnknownPeriod)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, user_id=%d, room_id=%d",
		result.ID, userID, req.RoomID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
