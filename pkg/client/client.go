package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rafaloh/agendesk/pkg/domain"
)

// Client is the appointment-platform API client. The token it carries is a
// process-wide binding: SetToken/ClearToken swap the Authorization header
// used by every future request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	loc        *time.Location

	mu    sync.RWMutex
	token string
}

// New creates a new API client. Hour labels are derived in local time unless
// SetLocation is called.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		loc:     time.Local,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken updates the Authorization bearer token used by all future
// outbound requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the bearer token; future requests go out unauthenticated.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token returns the currently bound bearer token ("" when unauthenticated).
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetLocation sets the timezone used when deriving appointment hour labels.
func (c *Client) SetLocation(loc *time.Location) {
	if loc != nil {
		c.loc = loc
	}
}

// CreateSession exchanges credentials for a session token and profile.
func (c *Client) CreateSession(ctx context.Context, email, password string) (*domain.Session, error) {
	body := map[string]string{"email": email, "password": password}
	var s domain.Session
	if err := c.post(ctx, "/sessions", body, &s); err != nil {
		return nil, fmt.Errorf("client.CreateSession: %w", err)
	}
	return &s, nil
}

// UpdateProfileRequest is the payload for updating the provider profile.
// Password fields are only sent when the caller sets them.
type UpdateProfileRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	OldPassword string `json:"old_password,omitempty"`
	Password    string `json:"password,omitempty"`
}

// UpdateProfile replaces the authenticated provider's profile.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*domain.Profile, error) {
	var p domain.Profile
	if err := c.doRequest(ctx, http.MethodPut, "/profile", req, &p); err != nil {
		return nil, fmt.Errorf("client.UpdateProfile: %w", err)
	}
	return &p, nil
}

// MonthAvailability returns, for every day of the given month, whether the
// provider still has open slots.
func (c *Client) MonthAvailability(ctx context.Context, providerID uuid.UUID, year int, month time.Month) ([]domain.DayAvailability, error) {
	params := url.Values{}
	params.Set("year", strconv.Itoa(year))
	params.Set("month", strconv.Itoa(int(month)))

	var days []domain.DayAvailability
	path := "/providers/" + url.PathEscape(providerID.String()) + "/month-availability?" + params.Encode()
	if err := c.get(ctx, path, &days); err != nil {
		return nil, fmt.Errorf("client.MonthAvailability: %w", err)
	}
	return days, nil
}

// appointmentRaw is the wire shape of a booked appointment; the date arrives
// as an ISO-8601 string.
type appointmentRaw struct {
	ID   uuid.UUID     `json:"id"`
	Date string        `json:"date"`
	User domain.Client `json:"user"`
}

// DayAppointments returns the appointments booked with the authenticated
// provider on a specific day, with the HH:mm hour label derived in the
// client's configured location. Server order (chronological) is preserved.
func (c *Client) DayAppointments(ctx context.Context, year int, month time.Month, day int) ([]domain.Appointment, error) {
	params := url.Values{}
	params.Set("year", strconv.Itoa(year))
	params.Set("month", strconv.Itoa(int(month)))
	params.Set("day", strconv.Itoa(day))

	var raw []appointmentRaw
	if err := c.get(ctx, "/appointments/me?"+params.Encode(), &raw); err != nil {
		return nil, fmt.Errorf("client.DayAppointments: %w", err)
	}

	appointments := make([]domain.Appointment, 0, len(raw))
	for _, r := range raw {
		start, err := time.Parse(time.RFC3339, r.Date)
		if err != nil {
			return nil, fmt.Errorf("client.DayAppointments: parse date %q: %w", r.Date, err)
		}
		start = start.In(c.loc)
		appointments = append(appointments, domain.Appointment{
			ID:        r.ID,
			Date:      start,
			HourLabel: start.Format("15:04"),
			Client:    r.User,
		})
	}
	return appointments, nil
}

// ForgotPassword asks the backend to mail a password-recovery token.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	if err := c.post(ctx, "/password/forgot", map[string]string{"email": email}, nil); err != nil {
		return fmt.Errorf("client.ForgotPassword: %w", err)
	}
	return nil
}

// ResetPassword redeems a recovery token for a new password.
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	body := map[string]string{"token": token, "password": password}
	if err := c.post(ctx, "/password/reset", body, nil); err != nil {
		return fmt.Errorf("client.ResetPassword: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil {
			if apiErr.Message != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Message}
			}
			if apiErr.Error != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
			}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
