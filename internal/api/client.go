// Package api implements the HTTP client for the booking backend. Responses
// use the backend's Italian wire names; failures carry the HTTP status so the
// store can distinguish an expired session from a transient outage.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"figaro/internal/apierr"
	"figaro/internal/config"
	"figaro/internal/domain"
	"figaro/internal/models"
)

// Client talks to the booking backend over JSON. All requests go through a
// shared rate limiter so a refresh storm cannot hammer the backend.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  *zerolog.Logger

	// Fetches run on goroutines while a login may swap the token.
	mu    sync.RWMutex
	token string
}

var _ domain.BookingAPI = (*Client)(nil)

// NewClient builds a client from the backend config.
func NewClient(cfg config.BackendConfig, logger *zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst),
		logger:  logger,
	}
}

// SetToken replaces the bearer token, e.g. after a login.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do issues one request. A non-2xx response becomes a StatusError carrying
// the backend's status code; the body is decoded into out when out is
// non-nil.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn().
			Str("op", op).
			Int("status", resp.StatusCode).
			Msg("backend rejected request")
		return apierr.NewStatus(op, resp.StatusCode, errors.New(strings.TrimSpace(string(detail))))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// Login exchanges credentials for a bearer token and installs it on the
// client.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	payload := map[string]string{"email": email, "password": password}
	var result struct {
		JWT string `json:"jwt"`
	}
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", payload, &result); err != nil {
		return "", err
	}
	c.SetToken(result.JWT)
	return result.JWT, nil
}

func (c *Client) ListServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := c.do(ctx, "list services", http.MethodGet, "/services", nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (c *Client) CreateService(ctx context.Context, service models.Service) error {
	return c.do(ctx, "create service", http.MethodPost, "/services", service, nil)
}

func (c *Client) UpdateService(ctx context.Context, id int64, service models.Service) error {
	return c.do(ctx, "update service", http.MethodPut, "/services/"+formatID(id), service, nil)
}

func (c *Client) DeleteService(ctx context.Context, id int64) error {
	return c.do(ctx, "delete service", http.MethodDelete, "/services/"+formatID(id), nil, nil)
}

func (c *Client) ListBarbers(ctx context.Context) ([]models.Barber, error) {
	var barbers []models.Barber
	if err := c.do(ctx, "list barbers", http.MethodGet, "/barbers", nil, &barbers); err != nil {
		return nil, err
	}
	return barbers, nil
}

func (c *Client) CreateBarber(ctx context.Context, barber models.Barber) error {
	return c.do(ctx, "create barber", http.MethodPost, "/barbers", barber, nil)
}

func (c *Client) UpdateBarber(ctx context.Context, id int64, barber models.Barber) error {
	return c.do(ctx, "update barber", http.MethodPut, "/barbers/"+formatID(id), barber, nil)
}

func (c *Client) DeleteBarber(ctx context.Context, id int64) error {
	return c.do(ctx, "delete barber", http.MethodDelete, "/barbers/"+formatID(id), nil, nil)
}

func (c *Client) ServicesForBarber(ctx context.Context, barberID int64) ([]models.Service, error) {
	var services []models.Service
	path := "/barbers/" + formatID(barberID) + "/services"
	if err := c.do(ctx, "barber services", http.MethodGet, path, nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (c *Client) SetBarberServices(ctx context.Context, barberID int64, serviceIDs []int64) error {
	payload := map[string][]int64{"serviceIds": serviceIDs}
	path := "/barbers/" + formatID(barberID) + "/services"
	return c.do(ctx, "set barber services", http.MethodPut, path, payload, nil)
}

func (c *Client) AppointmentsOn(ctx context.Context, date string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	path := "/appointments?data=" + url.QueryEscape(date)
	if err := c.do(ctx, "appointments by date", http.MethodGet, path, nil, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (c *Client) AppointmentsForUser(ctx context.Context, userID int64) ([]models.Appointment, error) {
	var appointments []models.Appointment
	path := "/customers/" + formatID(userID) + "/appointments"
	if err := c.do(ctx, "appointments by customer", http.MethodGet, path, nil, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (c *Client) CancelAppointment(ctx context.Context, id int64) error {
	return c.do(ctx, "cancel appointment", http.MethodDelete, "/appointments/"+formatID(id), nil, nil)
}

func (c *Client) BusinessHours(ctx context.Context) ([]models.BusinessHours, error) {
	var entries []models.BusinessHours
	if err := c.do(ctx, "business hours", http.MethodGet, "/business-hours", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) UpdateBusinessHours(ctx context.Context, entries []models.BusinessHours) ([]models.BusinessHours, error) {
	var updated []models.BusinessHours
	if err := c.do(ctx, "update business hours", http.MethodPut, "/business-hours", entries, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *Client) WaitingListForCustomer(ctx context.Context, userID int64) ([]models.WaitingList, error) {
	var entries []models.WaitingList
	path := "/customers/" + formatID(userID) + "/waiting-list"
	if err := c.do(ctx, "waiting list", http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) RemoveFromWaitingList(ctx context.Context, id int64) error {
	return c.do(ctx, "remove waiting entry", http.MethodDelete, "/waiting-list/"+formatID(id), nil, nil)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
