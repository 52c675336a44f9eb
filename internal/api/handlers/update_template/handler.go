package update_template

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SRS-RoomReservationService/internal/api/handlers"
	"github.com/m04kA/SRS-RoomReservationService/internal/api/middleware"
	updateTemplate "github.com/m04kA/SRS-RoomReservationService/internal/usecase/update_template"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidID          = "некорректный идентификатор шаблона"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные шаблона"
	msgTemplateNotFound   = "шаблон не найден"
	msgRoomNotFound       = "аудитория не найдена"
	msgPermissionDenied   = "управлять шаблонами может только администратор"
)

type Handler struct {
	useCase UpdateTemplateUseCase
	logger  Logger
}

func NewHandler(useCase UpdateTemplateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/templates/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req UpdateTemplateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /templates/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, id)
	if err != nil {
		h.logger.Warn("PATCH /templates/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateTemplate.ErrPermissionDenied):
			h.logger.Warn("PATCH /templates/{id} - Permission denied: template_id=%d, user_id=%d", id, userID)
			handlers.RespondForbidden(w, msgPermissionDenied)

		case errors.Is(err, updateTemplate.ErrTemplateNotFound):
			h.logger.Warn("PATCH /templates/{id} - Template not found: template_id=%d", id)
			handlers.RespondNotFound(w, msgTemplateNotFound)

		case errors.Is(err, updateTemplate.ErrRoomNotFound):
			h.logger.Warn("PATCH /templates/{id} - Room not found: template_id=%d", id)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, updateTemplate.ErrInvalidInput):
			h.logger.Warn("PATCH /templates/{id} - Invalid input: template_id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /templates/{id} - Failed to update template: template_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /templates/{id} - Template updated: template_id=%d, user_id=%d", id, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
