package create_reservation

import (
	"time"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	createReservation "github.com/m04kA/SRS-RoomReservationService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	RoomID    int64  `json:"roomId"`
	Date      string `json:"date"`    // "2025-09-01"
	Periods   string `json:"periods"` // "3", "3,4" или "1-4"
	Title     string `json:"title"`
	OwnerName string `json:"ownerName,omitempty"`
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

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		UserID:     userID,
		RoomID:     r.RoomID,
		Date:       date,
		PeriodExpr: r.Periods,
		Title:      r.Title,
		OwnerName:  r.OwnerName,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
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
