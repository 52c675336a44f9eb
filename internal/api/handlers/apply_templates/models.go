package apply_templates

import (
	"time"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	applyTemplates "github.com/m04kA/SRS-RoomReservationService/internal/usecase/apply_templates"
)

// ApplyTemplatesRequest HTTP request model
type ApplyTemplatesRequest struct {
	From          string  `json:"from"` // "2025-09-01"
	To            string  `json:"to"`   // "2025-12-28"
	Mode          string  `json:"mode"` // lock | materialize
	DryRun        bool    `json:"dryRun,omitempty"`
	ForceOverride bool    `json:"forceOverride,omitempty"`
	Priority      *string `json:"priority,omitempty"` // critical | high | normal
}

// ConflictItem запись о разрешенном конфликте
type ConflictItem struct {
	Date              string `json:"date"`
	RoomID            int64  `json:"roomId"`
	RoomName          string `json:"roomName"`
	Period            string `json:"period"`
	ReservationID     int64  `json:"reservationId"`
	ReservationTitle  string `json:"reservationTitle"`
	TemplateID        int64  `json:"templateId"`
	TemplateName      string `json:"templateName"`
	Priority          string `json:"priority"`
	Action            string `json:"action"` // overridden | relocated | skipped
	RelocatedToRoomID *int64 `json:"relocatedToRoomId,omitempty"`
}

// ErrorItem запись о сбое применения одной пары (шаблон, дата)
type ErrorItem struct {
	Date         string `json:"date"`
	RoomID       int64  `json:"roomId"`
	Period       string `json:"period,omitempty"`
	TemplateID   int64  `json:"templateId"`
	TemplateName string `json:"templateName"`
	Message      string `json:"message"`
}

// ApplyTemplatesResponse HTTP response model
type ApplyTemplatesResponse struct {
	Applied    int            `json:"applied"`
	Overridden int            `json:"overridden"`
	Relocated  int            `json:"relocated"`
	Skipped    int            `json:"skipped"`
	Conflicts  []ConflictItem `json:"conflicts"`
	Errors     []ErrorItem    `json:"errors"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ApplyTemplatesRequest) ToUseCaseRequest(userID int64) (*applyTemplates.Request, error) {
	from, err := time.Parse(domain.DateFormat, r.From)
	if err != nil {
		return nil, err
	}
	to, err := time.Parse(domain.DateFormat, r.To)
	if err != nil {
		return nil, err
	}

	return &applyTemplates.Request{
		UserID:        userID,
		From:          from,
		To:            to,
		Mode:          r.Mode,
		DryRun:        r.DryRun,
		ForceOverride: r.ForceOverride,
		Priority:      r.Priority,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *applyTemplates.Response) *ApplyTemplatesResponse {
	out := &ApplyTemplatesResponse{
		Applied:    resp.Applied,
		Overridden: resp.Overridden,
		Relocated:  resp.Relocated,
		Skipped:    resp.Skipped,
		Conflicts:  make([]ConflictItem, 0, len(resp.Conflicts)),
		Errors:     make([]ErrorItem, 0, len(resp.Errors)),
	}

	for _, c := range resp.Conflicts {
		out.Conflicts = append(out.Conflicts, ConflictItem{
			Date:              c.Date.Format(domain.DateFormat),
			RoomID:            c.RoomID,
			RoomName:          c.RoomName,
			Period:            c.Period,
			ReservationID:     c.Existing.ReservationID,
			ReservationTitle:  c.Existing.Title,
			TemplateID:        c.TemplateID,
			TemplateName:      c.TemplateName,
			Priority:          string(c.Priority),
			Action:            string(c.Action),
			RelocatedToRoomID: c.RelocatedToRoomID,
		})
	}

	for _, e := range resp.Errors {
		out.Errors = append(out.Errors, ErrorItem{
			Date:         e.Date.Format(domain.DateFormat),
			RoomID:       e.RoomID,
			Period:       e.Period,
			TemplateID:   e.TemplateID,
			TemplateName: e.TemplateName,
			Message:      e.Message,
		})
	}

	return out
}
