package update_template

import (
	"time"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	updateTemplate "github.com/m04kA/SRS-RoomReservationService/internal/usecase/update_template"
)

// UpdateTemplateRequest HTTP request model частичного обновления.
// Отсутствующее поле означает "оставить без изменений"; clearEndDate=true
// снимает ограничение окна действия.
type UpdateTemplateRequest struct {
	Name         *string `json:"name,omitempty"`
	RoomID       *int64  `json:"roomId,omitempty"`
	Weekdays     []int   `json:"weekdays,omitempty"`
	Periods      *string `json:"periods,omitempty"`
	StartDate    *string `json:"startDate,omitempty"`
	EndDate      *string `json:"endDate,omitempty"`
	ClearEndDate bool    `json:"clearEndDate,omitempty"`
	Priority     *string `json:"priority,omitempty"`
	Category     *string `json:"category,omitempty"`
	Enabled      *bool   `json:"enabled,omitempty"`
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
	UpdatedAt string   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateTemplateRequest) ToUseCaseRequest(userID, templateID int64) (*updateTemplate.Request, error) {
	req := &updateTemplate.Request{
		UserID:     userID,
		TemplateID: templateID,
		Name:       r.Name,
		RoomID:     r.RoomID,
		Weekdays:   r.Weekdays,
		PeriodExpr: r.Periods,
		ClearEnd:   r.ClearEndDate,
		Priority:   r.Priority,
		Category:   r.Category,
		Enabled:    r.Enabled,
	}

	if r.StartDate != nil {
		parsed, err := time.Parse(domain.DateFormat, *r.StartDate)
		if err != nil {
			return nil, err
		}
		req.StartDate = &parsed
	}
	if r.EndDate != nil {
		parsed, err := time.Parse(domain.DateFormat, *r.EndDate)
		if err != nil {
			return nil, err
		}
		req.EndDate = &parsed
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateTemplate.Response) *TemplateResponse {
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
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
