package create_reservation

import (
	"time"

	"github.com/m04kA/SRS-RoomReservationService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID     int64     // ID пользователя, создающего бронирование
	RoomID     int64     // ID аудитории
	Date       time.Time // Дата бронирования (без времени)
	PeriodExpr string    // Выражение периодов: "3", "3,4", "1-4"
	Title      string    // Название события
	OwnerName  string    // Отображаемое имя владельца
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64            // ID созданного бронирования
	RoomID      int64            // ID аудитории
	RoomName    string           // Название аудитории (денормализация)
	Title       string           // Название события
	OwnerName   string           // Имя владельца
	Date        time.Time        // Дата бронирования
	Periods     []string         // Нормализованный список периодов
	PeriodLabel string           // Человекочитаемая метка периодов
	StartTime   types.TimeString // Время начала первого периода
	EndTime     types.TimeString // Время конца последнего периода
	CreatedBy   int64            // ID создателя
	CreatedAt   time.Time        // Время создания
}
