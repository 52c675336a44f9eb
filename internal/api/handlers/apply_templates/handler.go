package apply_templates

import (
	"errors"
	"net/http"

	"github.com/m04kA/SRS-RoomReservationService/internal/api/handlers"
	"github.com/m04kA/SRS-RoomReservationService/internal/api/middleware"
	applyTemplates "github.com/m04kA/SRS-RoomReservationService/internal/usecase/apply_templates"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные параметры применения"
	msgPermissionDenied   = "применять шаблоны может только администратор"
)

type Handler struct {
	useCase ApplyTemplatesUseCase
	logger  Logger
}

func NewHandler(useCase ApplyTemplatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/templates/apply
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req ApplyTemplatesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /templates/apply - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /templates/apply - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, applyTemplates.ErrPermissionDenied):
			h.logger.Warn("POST /templates/apply - Permission denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgPermissionDenied)

		case errors.Is(err, applyTemplates.ErrInvalidInput):
			h.logger.Warn("POST /templates/apply - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /templates/apply - Failed to apply templates: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /templates/apply - Done: user_id=%d, applied=%d, overridden=%d, relocated=%d, skipped=%d",
		userID, result.Applied, result.Overridden, result.Relocated, result.Skipped)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
