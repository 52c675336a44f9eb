package list_templates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SRS-RoomReservationService/internal/api/handlers"
	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	listTemplates "github.com/m04kA/SRS-RoomReservationService/internal/usecase/list_templates"
)

const (
	msgInvalidEnabled  = "некорректное значение фильтра enabled"
	msgInvalidRoomID   = "некорректный идентификатор аудитории"
	msgInvalidPriority = "некорректное значение приоритета"
)

// TemplateItem элемент списка шаблонов
type TemplateItem struct {
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
}

// TemplatesResponse HTTP response model
type TemplatesResponse struct {
	Templates []TemplateItem `json:"templates"`
}

type Handler struct {
	useCase ListTemplatesUseCase
	logger  Logger
}

func NewHandler(useCase ListTemplatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/templates?enabled=true&priority=high&roomId=5
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &listTemplates.Request{}
	query := r.URL.Query()

	if raw := query.Get("enabled"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidEnabled)
			return
		}
		req.Enabled = &enabled
	}

	if raw := query.Get("priority"); raw != "" {
		if !domain.IsValidPriority(domain.Priority(raw)) {
			handlers.RespondBadRequest(w, msgInvalidPriority)
			return
		}
		req.Priority = &raw
	}

	if raw := query.Get("roomId"); raw != "" {
		roomID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || roomID <= 0 {
			handlers.RespondBadRequest(w, msgInvalidRoomID)
			return
		}
		req.RoomID = &roomID
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		if errors.Is(err, listTemplates.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidPriority)
			return
		}
		h.logger.Error("GET /templates - Failed to list templates: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	resp := TemplatesResponse{Templates: make([]TemplateItem, 0, len(result.Templates))}
	for _, tmpl := range result.Templates {
		var endDate *string
		if tmpl.EndDate != nil {
			formatted := tmpl.EndDate.Format(domain.DateFormat)
			endDate = &formatted
		}
		resp.Templates = append(resp.Templates, TemplateItem{
			ID:        tmpl.ID,
			Name:      tmpl.Name,
			RoomID:    tmpl.RoomID,
			RoomName:  tmpl.RoomName,
			Weekdays:  tmpl.Weekdays,
			Periods:   tmpl.Periods,
			StartDate: tmpl.StartDate.Format(domain.DateFormat),
			EndDate:   endDate,
			Priority:  tmpl.Priority,
			Category:  tmpl.Category,
			Enabled:   tmpl.Enabled,
			CreatedBy: tmpl.CreatedBy,
		})
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
