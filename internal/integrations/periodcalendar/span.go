package periodcalendar

import (
	"strings"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	"github.com/m04kA/SRS-RoomReservationService/pkg/types"
)

// Span временной охват набора периодов и его человекочитаемая метка
type Span struct {
	Label     string
	StartTime types.TimeString
	EndTime   types.TimeString
}

// BuildSpan строит охват по разрешенным периодам. Периоды должны быть
// переданы в порядке дня (ResolvePeriods возвращает их в порядке токенов).
// Для непрерывного диапазона метка имеет вид "первый–последний",
// для разрозненных периодов — перечисление через запятую.
func BuildSpan(periods []*Period) Span {
	if len(periods) == 0 {
		return Span{}
	}

	tokens := make([]string, 0, len(periods))
	labels := make([]string, 0, len(periods))
	for _, p := range periods {
		tokens = append(tokens, p.Token)
		labels = append(labels, p.Label)
	}

	span := Span{
		StartTime: periods[0].StartTime,
		EndTime:   periods[len(periods)-1].EndTime,
	}

	if len(periods) == 1 {
		span.Label = labels[0]
		return span
	}

	if domain.ArePeriodsContiguous(tokens) {
		span.Label = labels[0] + "–" + labels[len(labels)-1]
		return span
	}

	span.Label = strings.Join(labels, ", ")
	return span
}
