package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxTitleLength        = 200
	MaxOwnerNameLength    = 100
	MaxTemplateNameLength = 100
	MaxCategoryLength     = 50

	// MaxBulkApplyDays максимальная длина диапазона дат для массового
	// применения шаблонов (один семестр с запасом)
	MaxBulkApplyDays = 220
)

// PeriodOrder фиксированный порядок токенов учебных периодов.
// Нулевой урок, шесть нумерованных уроков, обед между четвертым и пятым,
// блок после занятий. Расширение словаря требует миграции данных.
var PeriodOrder = []string{"0", "1", "2", "3", "4", "lunch", "5", "6", "after"}

// periodIndex позиция токена в PeriodOrder
var periodIndex = func() map[string]int {
	m := make(map[string]int, len(PeriodOrder))
	for i, token := range PeriodOrder {
		m[token] = i
	}
	return m
}()
