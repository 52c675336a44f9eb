package apply_templates

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	"github.com/m04kA/SRS-RoomReservationService/internal/integrations/campusservice"
	resmodels "github.com/m04kA/SRS-RoomReservationService/internal/service/reservations/models"
)

const adminID = int64(1)

// понедельник
var monday = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	uc        *UseCase
	engine    *fakeEngine
	templates *fakeTemplateService
	campus    *fakeCampusClient
	audit     *fakeAuditSink
}

func newFixture(templates ...*domain.WeeklyTemplate) *fixture {
	engine := newFakeEngine()
	templateService := &fakeTemplateService{templates: templates}
	campus := &fakeCampusClient{
		rooms: []*campusservice.Room{
			{ID: 101, Name: "Аудитория 101"},
			{ID: 202, Name: "Аудитория 202"},
			{ID: 303, Name: "Аудитория 303"},
		},
		admins: map[int64]bool{adminID: true},
	}
	audit := &fakeAuditSink{}

	uc := NewUseCase(templateService, engine, engine, campus, &fakeCalendarClient{}, audit, nopLogger{})
	return &fixture{uc: uc, engine: engine, templates: templateService, campus: campus, audit: audit}
}

func weeklyTemplate(id int64, priority domain.Priority, periods ...string) *domain.WeeklyTemplate {
	return &domain.WeeklyTemplate{
		ID:        id,
		Name:      "Педсовет",
		RoomID:    101,
		RoomName:  "Аудитория 101",
		Weekdays:  []time.Weekday{time.Monday},
		Periods:   periods,
		StartDate: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		Priority:  priority,
		Category:  "Администрация",
		Enabled:   true,
		CreatedBy: adminID,
	}
}

// seedForeign создает обычное бронирование, не связанное с шаблонами
func seedForeign(t *testing.T, f *fixture, roomID int64, periods ...string) *domain.Reservation {
	t.Helper()
	res, err := f.engine.Create(context.Background(), resmodels.CreateParams{
		RoomID:    roomID,
		RoomName:  "Аудитория",
		Title:     "Факультатив",
		OwnerName: "Петров П.П.",
		Date:      monday,
		Periods:   periods,
		CreatedBy: 77,
	})
	require.NoError(t, err)
	f.engine.writes = 0
	return res
}

func applyRequest(mode string) *Request {
	return &Request{
		UserID: adminID,
		From:   monday,
		To:     monday,
		Mode:   mode,
	}
}

func TestUseCase_Execute_PermissionDenied(t *testing.T) {
	f := newFixture()

	req := applyRequest("lock")
	req.UserID = 99
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req := applyRequest("lock")
	req.To = monday.AddDate(0, 0, -1)
	_, err := f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = applyRequest("lock")
	req.To = monday.AddDate(1, 0, 0)
	_, err = f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = applyRequest("immediately")
	_, err = f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad := "urgent"
	req = applyRequest("lock")
	req.Priority = &bad
	_, err = f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_LockMode(t *testing.T) {
	tmpl := weeklyTemplate(7, domain.PriorityNormal, "2", "3")
	tmpl.Weekdays = []time.Weekday{time.Monday, time.Wednesday}
	f := newFixture(tmpl)

	req := applyRequest("lock")
	req.To = monday.AddDate(0, 0, 6) // вся неделя: понедельник и среда подходят
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Applied)
	assert.Zero(t, resp.Overridden)
	assert.Empty(t, resp.Conflicts)
	assert.Empty(t, resp.Errors)

	wednesday := monday.AddDate(0, 0, 2)
	for _, date := range []time.Time{monday, wednesday} {
		for _, period := range []string{"2", "3"} {
			slot, ok := f.engine.cells[domain.NewSlotKey(101, date, period)]
			require.True(t, ok, "lock for %s period %s must exist", date.Format(domain.DateFormat), period)
			assert.True(t, slot.IsLock())
			assert.True(t, slot.BelongsToTemplate(7))
		}
	}
}

func TestUseCase_Execute_MaterializeMode(t *testing.T) {
	f := newFixture(weeklyTemplate(7, domain.PriorityNormal, "2", "3"))

	resp, err := f.uc.Execute(context.Background(), applyRequest("materialize"))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Applied)

	require.Len(t, f.engine.reservations, 1)
	for _, res := range f.engine.reservations {
		assert.Equal(t, "Педсовет", res.Title)
		assert.Equal(t, "Администрация", res.OwnerName)
		assert.True(t, res.BelongsToTemplate(7))
		assert.Equal(t, []string{"2", "3"}, res.Periods)
		// время рассчитано по календарю звонков
		assert.Equal(t, "10:00", string(res.StartTime))
		assert.Equal(t, "11:45", string(res.EndTime))
	}
}

func TestUseCase_Execute_MaterializeIsIdempotent(t *testing.T) {
	f := newFixture(weeklyTemplate(7, domain.PriorityNormal, "2", "3"))
	ctx := context.Background()

	resp, err := f.uc.Execute(ctx, applyRequest("materialize"))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Applied)
	require.Len(t, f.engine.reservations, 1)

	// повторный прогон: следы того же шаблона — не конфликт и не применение
	resp, err = f.uc.Execute(ctx, applyRequest("materialize"))
	require.NoError(t, err)
	assert.Zero(t, resp.Applied)
	assert.Zero(t, resp.Overridden)
	assert.Zero(t, resp.Skipped)
	assert.Empty(t, resp.Conflicts)
	assert.Empty(t, resp.Errors)
	assert.Len(t, f.engine.reservations, 1)
}

func TestUseCase_Execute_LockModeReapply(t *testing.T) {
	f := newFixture(weeklyTemplate(7, domain.PriorityNormal, "2"))
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, applyRequest("lock"))
	require.NoError(t, err)

	// заглушки перезаписываются без конфликтов
	resp, err := f.uc.Execute(ctx, applyRequest("lock"))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Applied)
	assert.Empty(t, resp.Conflicts)
	assert.Empty(t, resp.Errors)
}

func TestUseCase_Execute_NormalYieldsToReservation(t *testing.T) {
	f := newFixture(weeklyTemplate(7, domain.PriorityNormal, "2", "3"))
	foreign := seedForeign(t, f, 101, "3")

	resp, err := f.uc.Execute(context.Background(), applyRequest("materialize"))
	require.NoError(t, err)

	assert.Zero(t, resp.Applied)
	assert.Equal(t, 1, resp.Skipped)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, domain.ConflictSkipped, resp.Conflicts[0].Action)
	assert.Equal(t, foreign.ID, resp.Conflicts[0].Existing.ReservationID)

	// бронирование нетронуто, шаблон не занял даже свободный период "2"
	_, ok := f.engine.reservations[foreign.ID]
	assert.True(t, ok)
	_, ok = f.engine.cells[domain.NewSlotKey(101, monday, "2")]
	assert.False(t, ok, "occurrence must be withheld entirely")
}

func TestUseCase_Execute_CriticalOverrides(t *testing.T) {
	f := newFixture(weeklyTemplate(7, domain.PriorityCritical, "2", "3"))
	foreign := seedForeign(t, f, 101, "3")

	resp, err := f.uc.Execute(context.Background(), applyRequest("materialize"))
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Applied)
	assert.Equal(t, 1, resp.Overridden)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, domain.ConflictOverridden, resp.Conflicts[0].Action)

	// вытесненное бронирование удалено, след шаблона на месте
	_, ok := f.engine.reservations[foreign.ID]
	assert.False(t, ok)
	slot := f.engine.cells[domain.NewSlotKey(101, monday, "3")]
	require.NotNil(t, slot)
	assert.True(t, slot.BelongsToTemplate(7))

	// конфликт записан в журнал аудита
	require.Len(t, f.audit.records, 1)
	assert.Equal(t, domain.ConflictOverridden, f.audit.records[0].Action)
}

func TestUseCase_Execute_HighRelocates(t *testing.T) {
	f := newFixture(weeklyTemplate(7, domain.PriorityHigh, "2", "3"))
	foreign := seedForeign(t, f, 101, "3")

	resp, err := f.uc.Execute(context.Background(), applyRequest("materialize"))
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Applied)
	assert.Equal(t, 1, resp.Relocated)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, domain.ConflictRelocated, resp.Conflicts[0].Action)
	require.NotNil(t, resp.Conflicts[0].RelocatedToRoomID)
	assert.Equal(t, int64(202), *resp.Conflicts[0].RelocatedToRoomID)

	// бронирование живо и переехало в первую свободную аудиторию каталога
	moved := f.engine.reservations[foreign.ID]
	require.NotNil(t, moved)
	assert.Equal(t, int64(202), moved.RoomID)
	assert.Equal(t, []string{"3"}, moved.Periods)
}

func TestUseCase_Execute_HighOverridesWhenNoFreeRoom(t *testing.T) {
	f := newFixture(weeklyTemplate(7, domain.PriorityHigh, "2"))
	foreign := seedForeign(t, f, 101, "2")

	// остальные аудитории заняты на тот же период
	seedForeign(t, f, 202, "2")
	seedForeign(t, f, 303, "2")

	resp, err := f.uc.Execute(context.Background(), applyRequest("materialize"))
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Applied)
	assert.Equal(t, 1, resp.Overridden)
	assert.Zero(t, resp.Relocated)

	_, ok := f.engine.reservations[foreign.ID]
	assert.False(t, ok, "reservation must be overridden when relocation is impossible")
}

func TestUseCase_Execute_HighOverridesWhenRelocationTargetTaken(t *testing.T) {
	f := newFixture(weeklyTemplate(7, domain.PriorityHigh, "2"))
	foreign := seedForeign(t, f, 101, "2")

	// аудитория 202 на деле занята, но снимок занятости этого не видит:
	// перенос в нее провалится уже внутри движка
	competitor := seedForeign(t, f, 202, "2")
	f.engine.staleOccupancyRoom = 202

	resp, err := f.uc.Execute(context.Background(), applyRequest("materialize"))
	require.NoError(t, err)

	// несостоявшийся перенос деградирует до вытеснения
	assert.Equal(t, 1, resp.Applied)
	assert.Equal(t, 1, resp.Overridden)
	assert.Zero(t, resp.Relocated)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, domain.ConflictOverridden, resp.Conflicts[0].Action)

	// вытеснен исходный оккупант, бронирование в 202 не тронуто
	_, ok := f.engine.reservations[foreign.ID]
	assert.False(t, ok)
	survivor := f.engine.reservations[competitor.ID]
	require.NotNil(t, survivor)
	assert.Equal(t, int64(202), survivor.RoomID)

	slot := f.engine.cells[domain.NewSlotKey(101, monday, "2")]
	require.NotNil(t, slot)
	assert.True(t, slot.BelongsToTemplate(7))
}

func TestUseCase_Execute_ForceOverride(t *testing.T) {
	f := newFixture(weeklyTemplate(7, domain.PriorityNormal, "2"))
	foreign := seedForeign(t, f, 101, "2")

	req := applyRequest("materialize")
	req.ForceOverride = true
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Applied)
	assert.Equal(t, 1, resp.Overridden)
	assert.Zero(t, resp.Skipped)

	_, ok := f.engine.reservations[foreign.ID]
	assert.False(t, ok)
}

func TestUseCase_Execute_DryRun(t *testing.T) {
	f := newFixture(weeklyTemplate(7, domain.PriorityCritical, "2"))
	foreign := seedForeign(t, f, 101, "2")

	req := applyRequest("materialize")
	req.DryRun = true
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// классификация как при настоящем прогоне
	assert.Equal(t, 1, resp.Applied)
	assert.Equal(t, 1, resp.Overridden)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, domain.ConflictOverridden, resp.Conflicts[0].Action)

	// но без единой записи: ни в хранилище, ни в аудит
	assert.Zero(t, f.engine.writes)
	_, ok := f.engine.reservations[foreign.ID]
	assert.True(t, ok)
	assert.Empty(t, f.audit.records)
}

func TestUseCase_Execute_DryRunRelocation(t *testing.T) {
	f := newFixture(weeklyTemplate(7, domain.PriorityHigh, "2"))
	foreign := seedForeign(t, f, 101, "2")

	req := applyRequest("materialize")
	req.DryRun = true
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Relocated)
	require.Len(t, resp.Conflicts, 1)
	require.NotNil(t, resp.Conflicts[0].RelocatedToRoomID)

	assert.Zero(t, f.engine.writes)
	assert.Equal(t, int64(101), f.engine.reservations[foreign.ID].RoomID)
}

func TestUseCase_Execute_PriorityFilter(t *testing.T) {
	critical := weeklyTemplate(7, domain.PriorityCritical, "2")
	normal := weeklyTemplate(8, domain.PriorityNormal, "4")
	f := newFixture(critical, normal)

	priority := "critical"
	req := applyRequest("lock")
	req.Priority = &priority
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Applied)
	_, ok := f.engine.cells[domain.NewSlotKey(101, monday, "2")]
	assert.True(t, ok)
	_, ok = f.engine.cells[domain.NewSlotKey(101, monday, "4")]
	assert.False(t, ok, "filtered-out template must not be applied")
}

func TestUseCase_Execute_DisabledTemplateIgnored(t *testing.T) {
	tmpl := weeklyTemplate(7, domain.PriorityNormal, "2")
	tmpl.Enabled = false
	f := newFixture(tmpl)

	resp, err := f.uc.Execute(context.Background(), applyRequest("lock"))
	require.NoError(t, err)
	assert.Zero(t, resp.Applied)
	assert.Empty(t, f.engine.cells)
}

func TestUseCase_Execute_OutOfWindowDatesIgnored(t *testing.T) {
	tmpl := weeklyTemplate(7, domain.PriorityNormal, "2")
	end := monday.AddDate(0, 0, -7)
	tmpl.EndDate = &end
	f := newFixture(tmpl)

	resp, err := f.uc.Execute(context.Background(), applyRequest("lock"))
	require.NoError(t, err)
	assert.Zero(t, resp.Applied)
	assert.Empty(t, f.engine.cells)
}

func TestUseCase_Execute_ForeignLockIsSwept(t *testing.T) {
	f := newFixture(weeklyTemplate(7, domain.PriorityNormal, "2"))

	// заглушка другого шаблона не считается конфликтом
	require.NoError(t, f.engine.PlaceLock(context.Background(), 99, 101, "Аудитория 101", monday, []string{"2"}, adminID))

	resp, err := f.uc.Execute(context.Background(), applyRequest("lock"))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Applied)
	assert.Empty(t, resp.Conflicts)

	slot := f.engine.cells[domain.NewSlotKey(101, monday, "2")]
	require.NotNil(t, slot)
	assert.True(t, slot.BelongsToTemplate(7))
}
