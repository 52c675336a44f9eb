package create_template

import (
	"errors"
	"net/http"

	"github.com/m04kA/SRS-RoomReservationService/internal/api/handlers"
	"github.com/m04kA/SRS-RoomReservationService/internal/api/middleware"
	createTemplate "github.com/m04kA/SRS-RoomReservationService/internal/usecase/create_template"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные шаблона"
	msgRoomNotFound       = "аудитория не найдена"
	msgPermissionDenied   = "управлять шаблонами может только администратор"
)

type Handler struct {
	useCase CreateTemplateUseCase
	logger  Logger
}

func NewHandler(useCase CreateTemplateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/templates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateTemplateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /templates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /templates - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createTemplate.ErrPermissionDenied):
			h.logger.Warn("POST /templates - Permission denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgPermissionDenied)

		case errors.Is(err, createTemplate.ErrRoomNotFound):
			h.logger.Warn("POST /templates - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createTemplate.ErrInvalidInput):
			h.logger.Warn("POST /templates - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /templates - Failed to create template: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /templates - Template created: template_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
