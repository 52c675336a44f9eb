package apply_templates

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	"github.com/m04kA/SRS-RoomReservationService/internal/integrations/campusservice"
	"github.com/m04kA/SRS-RoomReservationService/internal/integrations/periodcalendar"
	"github.com/m04kA/SRS-RoomReservationService/internal/service/reservations"
	resmodels "github.com/m04kA/SRS-RoomReservationService/internal/service/reservations/models"
	"github.com/m04kA/SRS-RoomReservationService/pkg/types"
)

// fakeEngine движок бронирований в памяти. Повторяет контракт настоящего:
// ячейку держит либо живое бронирование, либо заглушка; заглушки вытесняются
// при размещении, живые бронирования дают *SlotOccupiedError.
// Счетчик writes позволяет проверять отсутствие записи при dry run.
type fakeEngine struct {
	mu           sync.Mutex
	cells        map[domain.SlotKey]*domain.Slot
	reservations map[int64]*domain.Reservation
	nextID       int64
	writes       int

	// staleOccupancyRoom аудитория, которую ListOccupiedRooms пропускает:
	// имитация устаревшего снимка занятости, когда комнату успели занять
	// после построения списка свободных
	staleOccupancyRoom int64
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		cells:        make(map[domain.SlotKey]*domain.Slot),
		reservations: make(map[int64]*domain.Reservation),
	}
}

// checkAndSweep проверяет ячейки и расчищает заглушки; живое бронирование
// (кроме ignoreID) возвращается как конфликт занятости
func (e *fakeEngine) checkAndSweep(roomID int64, roomName string, date time.Time, periods []string, ignoreID *int64) error {
	for _, period := range periods {
		key := domain.NewSlotKey(roomID, date, period)
		slot, ok := e.cells[key]
		if !ok {
			continue
		}
		if slot.IsLock() {
			delete(e.cells, key)
			continue
		}
		if ignoreID != nil && slot.ReservationID != nil && *slot.ReservationID == *ignoreID {
			delete(e.cells, key)
			continue
		}
		return &reservations.SlotOccupiedError{
			RoomID:     roomID,
			RoomName:   roomName,
			Date:       date,
			Period:     period,
			OccupantID: *slot.ReservationID,
		}
	}
	return nil
}

func (e *fakeEngine) Create(ctx context.Context, params resmodels.CreateParams) (*domain.Reservation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkAndSweep(params.RoomID, params.RoomName, params.Date, params.Periods, nil); err != nil {
		return nil, err
	}

	e.nextID++
	res := &domain.Reservation{
		ID:          e.nextID,
		RoomID:      params.RoomID,
		RoomName:    params.RoomName,
		Title:       params.Title,
		OwnerName:   params.OwnerName,
		Date:        params.Date,
		StartTime:   params.StartTime,
		EndTime:     params.EndTime,
		Periods:     params.Periods,
		PeriodLabel: params.PeriodLabel,
		TemplateID:  params.TemplateID,
		CreatedBy:   params.CreatedBy,
	}
	e.reservations[res.ID] = res
	for _, period := range params.Periods {
		id := res.ID
		e.cells[domain.NewSlotKey(params.RoomID, params.Date, period)] = &domain.Slot{
			RoomID: params.RoomID, Date: params.Date, Period: period,
			Kind: domain.SlotKindReservation, ReservationID: &id, TemplateID: params.TemplateID,
		}
	}
	e.writes++
	return res, nil
}

func (e *fakeEngine) Move(ctx context.Context, params resmodels.MoveParams) (*domain.Reservation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	res, ok := e.reservations[params.ReservationID]
	if !ok {
		return nil, reservations.ErrReservationNotFound
	}
	if err := e.checkAndSweep(params.NewRoomID, params.NewRoomName, res.Date, params.NewPeriods, &res.ID); err != nil {
		return nil, err
	}

	for key, slot := range e.cells {
		if slot.ReservationID != nil && *slot.ReservationID == res.ID {
			delete(e.cells, key)
		}
	}
	res.RoomID = params.NewRoomID
	res.RoomName = params.NewRoomName
	res.Periods = params.NewPeriods
	for _, period := range params.NewPeriods {
		id := res.ID
		e.cells[domain.NewSlotKey(params.NewRoomID, res.Date, period)] = &domain.Slot{
			RoomID: params.NewRoomID, Date: res.Date, Period: period,
			Kind: domain.SlotKindReservation, ReservationID: &id, TemplateID: res.TemplateID,
		}
	}
	e.writes++
	return res, nil
}

func (e *fakeEngine) DeleteSnapshot(ctx context.Context, res *domain.Reservation) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.reservations[res.ID]; !ok {
		return reservations.ErrReservationNotFound
	}
	delete(e.reservations, res.ID)
	for key, slot := range e.cells {
		if slot.ReservationID != nil && *slot.ReservationID == res.ID {
			delete(e.cells, key)
		}
	}
	e.writes++
	return nil
}

func (e *fakeEngine) PlaceLock(ctx context.Context, templateID, roomID int64, roomName string, date time.Time, periods []string, createdBy int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkAndSweep(roomID, roomName, date, periods, nil); err != nil {
		return err
	}
	for _, period := range periods {
		id := templateID
		e.cells[domain.NewSlotKey(roomID, date, period)] = &domain.Slot{
			RoomID: roomID, Date: date, Period: period,
			Kind: domain.SlotKindTemplateLock, TemplateID: &id, CreatedBy: createdBy,
		}
	}
	e.writes++
	return nil
}

func (e *fakeEngine) Occupant(ctx context.Context, roomID int64, date time.Time, period string) (*resmodels.Occupant, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	slot, ok := e.cells[domain.NewSlotKey(roomID, date, period)]
	if !ok {
		return nil, nil
	}
	if slot.IsLock() {
		return &resmodels.Occupant{Kind: domain.SlotKindTemplateLock, TemplateID: slot.TemplateID}, nil
	}
	res, ok := e.reservations[*slot.ReservationID]
	if !ok {
		return nil, nil
	}
	return &resmodels.Occupant{Kind: domain.SlotKindReservation, Reservation: res, TemplateID: slot.TemplateID}, nil
}

// ListOccupiedRooms реализует SlotRepository поверх ячеек движка
func (e *fakeEngine) ListOccupiedRooms(ctx context.Context, date time.Time, period string, roomIDs []int64) ([]int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var occupied []int64
	for _, roomID := range roomIDs {
		if roomID == e.staleOccupancyRoom {
			continue
		}
		if _, ok := e.cells[domain.NewSlotKey(roomID, date, period)]; ok {
			occupied = append(occupied, roomID)
		}
	}
	return occupied, nil
}

// fakeTemplateService отдает преднастроенные шаблоны, повторяя контракт
// настоящего сервиса: фильтрация и сортировка по приоритету
type fakeTemplateService struct {
	templates []*domain.WeeklyTemplate
}

func (s *fakeTemplateService) List(ctx context.Context, filter domain.TemplateFilter) ([]*domain.WeeklyTemplate, error) {
	var result []*domain.WeeklyTemplate
	for _, tmpl := range s.templates {
		if filter.Enabled != nil && tmpl.Enabled != *filter.Enabled {
			continue
		}
		if filter.Priority != nil && tmpl.Priority != *filter.Priority {
			continue
		}
		result = append(result, tmpl)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return domain.PriorityRank(result[i].Priority) < domain.PriorityRank(result[j].Priority)
	})
	return result, nil
}

type fakeCampusClient struct {
	rooms  []*campusservice.Room
	admins map[int64]bool
}

func (c *fakeCampusClient) ListRooms(ctx context.Context) ([]*campusservice.Room, error) {
	return c.rooms, nil
}

func (c *fakeCampusClient) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return c.admins[userID], nil
}

// fakeCalendarClient отдает статичное расписание звонков
type fakeCalendarClient struct{}

var fakePeriodTimes = map[string][2]types.TimeString{
	"0":     {"08:00", "08:45"},
	"1":     {"09:00", "09:45"},
	"2":     {"10:00", "10:45"},
	"3":     {"11:00", "11:45"},
	"4":     {"12:00", "12:45"},
	"lunch": {"12:45", "13:30"},
	"5":     {"13:30", "14:15"},
	"6":     {"14:30", "15:15"},
	"after": {"15:30", "17:00"},
}

func (c *fakeCalendarClient) ResolvePeriods(ctx context.Context, date time.Time, tokens []string) ([]*periodcalendar.Period, error) {
	result := make([]*periodcalendar.Period, 0, len(tokens))
	for _, token := range tokens {
		times := fakePeriodTimes[token]
		result = append(result, &periodcalendar.Period{
			Token:     token,
			Label:     token,
			StartTime: times[0],
			EndTime:   times[1],
		})
	}
	return result, nil
}

type fakeAuditSink struct {
	records []domain.ConflictInfo
}

func (s *fakeAuditSink) RecordConflict(ctx context.Context, info domain.ConflictInfo) {
	s.records = append(s.records, info)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}
