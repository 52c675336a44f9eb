package get_reservation

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SRS-RoomReservationService/internal/api/handlers"
	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	getReservation "github.com/m04kA/SRS-RoomReservationService/internal/usecase/get_reservation"
)

const (
	msgInvalidID           = "некорректный идентификатор бронирования"
	msgReservationNotFound = "бронирование не найдено"
)

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID          int64    `json:"id"`
	RoomID      int64    `json:"roomId"`
	RoomName    string   `json:"roomName"`
	Title       string   `json:"title"`
	OwnerName   string   `json:"ownerName,omitempty"`
	Date        string   `json:"date"`
	Periods     []string `json:"periods"`
	PeriodLabel string   `json:"periodLabel"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	TemplateID  *int64   `json:"templateId,omitempty"`
	CreatedBy   int64    `json:"createdBy"`
	CreatedAt   string   `json:"createdAt"`
}

type Handler struct {
	useCase GetReservationUseCase
	logger  Logger
}

func NewHandler(useCase GetReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), id)
	if err != nil {
		if errors.Is(err, getReservation.ErrReservationNotFound) {
			h.logger.Warn("GET /reservations/{id} - Reservation not found: reservation_id=%d", id)
			handlers.RespondNotFound(w, msgReservationNotFound)
			return
		}
		h.logger.Error("GET /reservations/{id} - Failed to get reservation: reservation_id=%d, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &ReservationResponse{
		ID:          result.ID,
		RoomID:      result.RoomID,
		RoomName:    result.RoomName,
		Title:       result.Title,
		OwnerName:   result.OwnerName,
		Date:        result.Date.Format(domain.DateFormat),
		Periods:     result.Periods,
		PeriodLabel: result.PeriodLabel,
		StartTime:   result.StartTime.String(),
		EndTime:     result.EndTime.String(),
		TemplateID:  result.TemplateID,
		CreatedBy:   result.CreatedBy,
		CreatedAt:   result.CreatedAt.Format(time.RFC3339),
	})
}
