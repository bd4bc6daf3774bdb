package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"gridcal/internal/calendar"
)

// TokenSource supplies the bearer token attached to every request. An empty
// token means the user is signed out.
type TokenSource interface {
	Token() string
}

// Client talks to the calendar backend: the edge functions proxying Google
// Calendar, plus the google_calendars table read. Every call is fire-once;
// retry and backoff are the caller's problem.
type Client struct {
	baseURL string
	anonKey string
	tokens  TokenSource
	http    *http.Client
	log     *zap.Logger
}

// New creates a backend client. anonKey may be empty when the backend does
// not require a project API key alongside the bearer token.
func New(baseURL, anonKey string, tokens TokenSource, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		tokens:  tokens,
		http:    &http.Client{},
		log:     log,
	}
}

// ListCalendars returns the connected calendars, primary first. The
// ordering comes from the server-side query; the client does not re-sort.
func (c *Client) ListCalendars(ctx context.Context) ([]calendar.Calendar, error) {
	endpoint := c.baseURL + "/rest/v1/google_calendars?select=*&order=is_primary.desc"

	var calendars []calendar.Calendar
	if err := c.do(ctx, "listCalendars", http.MethodGet, endpoint, nil, &calendars); err != nil {
		return nil, err
	}
	return calendars, nil
}

// ListEvents fetches events for a calendar. timeMin and timeMax are
// inclusive bounds; zero values are omitted and mean unbounded.
func (c *Client) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]calendar.Event, error) {
	params := url.Values{}
	params.Set("calendarId", calendarID)
	if !timeMin.IsZero() {
		params.Set("timeMin", timeMin.Format(time.RFC3339))
	}
	if !timeMax.IsZero() {
		params.Set("timeMax", timeMax.Format(time.RFC3339))
	}
	endpoint := c.baseURL + "/functions/v1/get-google-events?" + params.Encode()

	var resp struct {
		Items []calendar.Event `json:"items"`
	}
	if err := c.do(ctx, "listEvents", http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

type upsertRequest struct {
	CalendarID string              `json:"calendarId"`
	Event      calendar.EventPatch `json:"event"`
	EventID    string              `json:"eventId,omitempty"`
}

// CreateEvent creates an event; the server assigns the ID.
func (c *Client) CreateEvent(ctx context.Context, calendarID string, patch calendar.EventPatch) (*calendar.Event, error) {
	return c.upsert(ctx, "createEvent", upsertRequest{CalendarID: calendarID, Event: patch})
}

// UpdateEvent replaces an existing event's editable fields. The presence of
// eventId in the request body is what signals an update to the backend.
func (c *Client) UpdateEvent(ctx context.Context, calendarID, eventID string, patch calendar.EventPatch) (*calendar.Event, error) {
	return c.upsert(ctx, "updateEvent", upsertRequest{CalendarID: calendarID, Event: patch, EventID: eventID})
}

func (c *Client) upsert(ctx context.Context, op string, req upsertRequest) (*calendar.Event, error) {
	endpoint := c.baseURL + "/functions/v1/google-event-upsert"

	var event calendar.Event
	if err := c.do(ctx, op, http.MethodPost, endpoint, req, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// DeleteEvent removes an event. Success has no response body.
func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	endpoint := c.baseURL + "/functions/v1/google-event-delete"
	body := map[string]string{"calendarId": calendarID, "eventId": eventID}
	return c.do(ctx, "deleteEvent", http.MethodDelete, endpoint, body, nil)
}

func (c *Client) do(ctx context.Context, op, method, endpoint string, body, out any) error {
	token := c.tokens.Token()
	if token == "" {
		return ErrNotAuthenticated
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if c.anonKey != "" {
		req.Header.Set("apikey", c.anonKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("remote operation failed",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode))
		return &RemoteError{Op: op, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
