package create_template

import (
	"time"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	createTemplate "github.com/m04kA/SRS-RoomReservationService/internal/usecase/create_template"
)

// CreateTemplateRequest HTTP request model
type CreateTemplateRequest struct {
	Name      string  `json:"name"`
	RoomID    int64   `json:"roomId"`
	Weekdays  []int   `json:"weekdays"` // 0=воскресенье .. 6=суббота
	Periods   string  `json:"periods"`  // "3", "3,4" или "1-4"
	StartDate string  `json:"startDate"`
	EndDate   *string `json:"endDate,omitempty"`
	Priority  string  `json:"priority"` // critical | high | normal
	Category  string  `json:"category,omitempty"`
	Enabled   bool    `json:"enabled"`
}

// TemplateResponse HTTP response model
type TemplateResponse struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	RoomID    int64    `json:"roomId"`
	RoomName  string   `json:"roomName"`
	Weekdays  []int    `json:"weekdays"`
	Periods   []string `json:"periods"`
	StartDate string   `json:"startDate"`
	EndDate   *string  `json:"endDate,omitempty"`
	Priority  string   `json:"priority"`
	Category  string   `json:"category,omitempty"`
	Enabled   bool     `json:"enabled"`
	CreatedBy int64    `json:"createdBy"`
	CreatedAt string   `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateTemplateRequest) ToUseCaseRequest(userID int64) (*createTemplate.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	var endDate *time.Time
	if r.EndDate != nil {
		parsed, err := time.Parse(domain.DateFormat, *r.EndDate)
		if err != nil {
			return nil, err
		}
		endDate = &parsed
	}

	return &createTemplate.Request{
		UserID:     userID,
		Name:       r.Name,
		RoomID:     r.RoomID,
		Weekdays:   r.Weekdays,
		PeriodExpr: r.Periods,
		StartDate:  startDate,
		EndDate:    endDate,
		Priority:   r.Priority,
		Category:   r.Category,
		Enabled:    r.Enabled,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createTemplate.Response) *TemplateResponse {
	var endDate *string
	if resp.EndDate != nil {
		formatted := resp.EndDate.Format(domain.DateFormat)
		endDate = &formatted
	}

	return &TemplateResponse{
		ID:        resp.ID,
		Name:      resp.Name,
		RoomID:    resp.RoomID,
		RoomName:  resp.RoomName,
		Weekdays:  resp.Weekdays,
		Periods:   resp.Periods,
		StartDate: resp.StartDate.Format(domain.DateFormat),
		EndDate:   endDate,
		Priority:  resp.Priority,
		Category:  resp.Category,
		Enabled:   resp.Enabled,
		CreatedBy: resp.CreatedBy,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
