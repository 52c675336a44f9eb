package campusservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент справочника кампуса (аудитории, пользователи, роли)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента справочника кампуса
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetRoom получает аудиторию по ID
func (c *Client) GetRoom(ctx context.Context, roomID int64) (*Room, error) {
	url := fmt.Sprintf("%s/internal/rooms/%d", c.baseURL, roomID)

	var room Room
	if err := c.getJSON(ctx, url, &room, ErrRoomNotFound); err != nil {
		return nil, err
	}
	return &room, nil
}

// ListRooms получает список всех аудиторий
func (c *Client) ListRooms(ctx context.Context) ([]*Room, error) {
	url := fmt.Sprintf("%s/internal/rooms", c.baseURL)

	var rooms []*Room
	if err := c.getJSON(ctx, url, &rooms, nil); err != nil {
		return nil, err
	}
	return rooms, nil
}

// GetUser получает пользователя по ID
func (c *Client) GetUser(ctx context.Context, userID int64) (*User, error) {
	url := fmt.Sprintf("%s/internal/users/%d", c.baseURL, userID)

	var user User
	if err := c.getJSON(ctx, url, &user, ErrUserNotFound); err != nil {
		return nil, err
	}
	return &user, nil
}

// IsAdmin возвращает true, если пользователь — администратор.
// Неизвестный пользователь считается не-администратором.
func (c *Client) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	user, err := c.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsAdmin(), nil
}

// IsSuperAdmin возвращает true, если пользователь — суперадминистратор
func (c *Client) IsSuperAdmin(ctx context.Context, userID int64) (bool, error) {
	user, err := c.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsSuperAdmin(), nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ.
// notFoundErr возвращается на 404 (nil — 404 считается ошибкой протокола).
func (c *Client) getJSON(ctx context.Context, url string, dst interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		if notFoundErr != nil {
			return notFoundErr
		}
		fallthrough
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
