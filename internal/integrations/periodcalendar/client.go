package periodcalendar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент календаря учебных периодов
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента календаря периодов
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetDaySchedule получает расписание периодов на дату
func (c *Client) GetDaySchedule(ctx context.Context, date time.Time) (*DaySchedule, error) {
	url := fmt.Sprintf("%s/internal/calendar/%s/periods", c.baseURL, date.Format(domain.DateFormat))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrDayNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var schedule DaySchedule
	if err := json.NewDecoder(resp.Body).Decode(&schedule); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &schedule, nil
}

// ResolvePeriods возвращает периоды дня для набора токенов в порядке набора.
// Отсутствие токена в расписании дня — ошибка ErrPeriodNotFound.
func (c *Client) ResolvePeriods(ctx context.Context, date time.Time, tokens []string) ([]*Period, error) {
	schedule, err := c.GetDaySchedule(ctx, date)
	if err != nil {
		return nil, err
	}

	byToken := schedule.ByToken()
	periods := make([]*Period, 0, len(tokens))
	for _, token := range tokens {
		p, ok := byToken[token]
		if !ok {
			return nil, fmt.Errorf("%w: token=%q date=%s", ErrPeriodNotFound, token, date.Format(domain.DateFormat))
		}
		periods = append(periods, &p)
	}

	return periods, nil
}
