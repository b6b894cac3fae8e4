package catalogservice

import (
	"context"
	"encoding/json"
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

// Client клиент для работы с CatalogService (салоны, услуги, мастера)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CatalogService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetSalon получает салон по ID
func (c *Client) GetSalon(ctx context.Context, salonID int64) (*Salon, error) {
	url := fmt.Sprintf("%s/internal/salons/%d", c.baseURL, salonID)

	var salon Salon
	if err := c.get(ctx, url, &salon, ErrSalonNotFound); err != nil {
		return nil, err
	}

	return &salon, nil
}

// GetService получает услугу салона по ID
func (c *Client) GetService(ctx context.Context, salonID, serviceID int64) (*Service, error) {
	url := fmt.Sprintf("%s/internal/salons/%d/services/%d", c.baseURL, salonID, serviceID)

	var service Service
	if err := c.get(ctx, url, &service, ErrServiceNotFound); err != nil {
		return nil, err
	}

	return &service, nil
}

// GetStaffMember получает мастера салона по ID
func (c *Client) GetStaffMember(ctx context.Context, salonID, staffID int64) (*StaffMember, error) {
	url := fmt.Sprintf("%s/internal/salons/%d/staff/%d", c.baseURL, salonID, staffID)

	var staff StaffMember
	if err := c.get(ctx, url, &staff, ErrStaffNotFound); err != nil {
		return nil, err
	}

	return &staff, nil
}

// get выполняет GET запрос и декодирует ответ
// notFoundErr возвращается при статусе 404
func (c *Client) get(ctx context.Context, url string, out interface{}, notFoundErr error) error {
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

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
