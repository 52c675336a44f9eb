package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SRS-RoomReservationService/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

const msgMissingUserID = "не указан идентификатор пользователя"

// Auth извлекает идентификатор пользователя из заголовка X-User-ID.
// Роли и права сервис не вычисляет: решение о них принимает CampusService,
// сюда приходит уже аутентифицированный идентификатор от шлюза.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-User-ID")
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает идентификатор пользователя из контекста запроса
func GetUserID(ctx context.Context) int64 {
	if id, ok := ctx.Value(userIDKey).(int64); ok {
		return id
	}
	return 0
}
