package apply_templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRangeDays(t *testing.T) {
	// зоны с разным смещением имитируют перевод часов внутри диапазона:
	// между полуночами проходит меньше полных суток
	winter := time.FixedZone("CET", 1*60*60)
	summer := time.FixedZone("CEST", 2*60*60)

	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{
			name: "same day",
			from: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "full week",
			from: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC),
			want: 7,
		},
		{
			name: "ignores time of day",
			from: time.Date(2025, 9, 1, 23, 59, 0, 0, time.UTC),
			to:   time.Date(2025, 9, 2, 0, 1, 0, 0, time.UTC),
			want: 2,
		},
		{
			name: "spring clock shift",
			from: time.Date(2025, 3, 29, 0, 0, 0, 0, winter),
			to:   time.Date(2025, 3, 30, 0, 0, 0, 0, summer),
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rangeDays(tt.from, tt.to))
		})
	}
}
