package move_reservation

import (
	"time"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	moveReservation "github.com/m04kA/SRS-RoomReservationService/internal/usecase/move_reservation"
)

// MoveReservationRequest HTTP request model.
// Нулевой roomId означает "оставить текущую аудиторию",
// пустые periods — "оставить текущие периоды".
type MoveReservationRequest struct {
	RoomID  int64  `json:"roomId,omitempty"`
	Periods string `json:"periods,omitempty"`
}

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
	CreatedBy   int64    `json:"createdBy"`
	CreatedAt   string   `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *moveReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:          resp.ID,
		RoomID:      resp.RoomID,
		RoomName:    resp.RoomName,
		Title:       resp.Title,
		OwnerName:   resp.OwnerName,
		Date:        resp.Date.Format(domain.DateFormat),
		Periods:     resp.Periods,
		PeriodLabel: resp.PeriodLabel,
		StartTime:   resp.StartTime.String(),
		EndTime:     resp.EndTime.String(),
		CreatedBy:   resp.CreatedBy,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}
