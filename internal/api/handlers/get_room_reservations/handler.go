package get_room_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SRS-RoomReservationService/internal/api/handlers"
	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	getRoomReservations "github.com/m04kA/SRS-RoomReservationService/internal/usecase/get_room_reservations"
)

const (
	msgInvalidRoomID = "некорректный идентификатор аудитории"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput  = "некорректные параметры запроса"
)

// ReservationItem элемент списка бронирований
type ReservationItem struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	OwnerName   string   `json:"ownerName,omitempty"`
	Periods     []string `json:"periods"`
	PeriodLabel string   `json:"periodLabel"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	TemplateID  *int64   `json:"templateId,omitempty"`
	CreatedBy   int64    `json:"createdBy"`
}

// RoomReservationsResponse HTTP response model
type RoomReservationsResponse struct {
	RoomID       int64             `json:"roomId"`
	Date         string            `json:"date"`
	Reservations []ReservationItem `json:"reservations"`
}

type Handler struct {
	useCase GetRoomReservationsUseCase
	logger  Logger
}

func NewHandler(useCase GetRoomReservationsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{id}/reservations?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || roomID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), roomID, date)
	if err != nil {
		if errors.Is(err, getRoomReservations.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("GET /rooms/{id}/reservations - Failed to list reservations: room_id=%d, error=%v", roomID, err)
		handlers.RespondInternalError(w)
		return
	}

	resp := RoomReservationsResponse{
		RoomID:       result.RoomID,
		Date:         result.Date.Format(domain.DateFormat),
		Reservations: make([]ReservationItem, 0, len(result.Reservations)),
	}
	for _, res := range result.Reservations {
		resp.Reservations = append(resp.Reservations, ReservationItem{
			ID:          res.ID,
			Title:       res.Title,
			OwnerName:   res.OwnerName,
			Periods:     res.Periods,
			PeriodLabel: res.PeriodLabel,
			StartTime:   res.StartTime.String(),
			EndTime:     res.EndTime.String(),
			TemplateID:  res.TemplateID,
			CreatedBy:   res.CreatedBy,
		})
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
