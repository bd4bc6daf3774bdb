package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gridcal/internal/calendar"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestListEvents(t *testing.T) {
	var gotPath, gotAuth, gotCalendarID, gotTimeMin string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotCalendarID = r.URL.Query().Get("calendarId")
		gotTimeMin = r.URL.Query().Get("timeMin")
		json.NewEncoder(w).Encode(map[string]any{
			"items": []calendar.Event{{ID: "ev1", Summary: "Standup"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "anon-key", staticToken("tok"), nil)
	timeMin := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	events, err := c.ListEvents(context.Background(), "primary", timeMin, timeMin.AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("ListEvents error: %v", err)
	}

	if gotPath != "/functions/v1/get-google-events" {
		t.Fatalf("wrong endpoint: %s", gotPath)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("wrong auth header: %q", gotAuth)
	}
	if gotCalendarID != "primary" || gotTimeMin != "2024-03-01T00:00:00Z" {
		t.Fatalf("wrong query: calendarId=%q timeMin=%q", gotCalendarID, gotTimeMin)
	}
	if len(events) != 1 || events[0].ID != "ev1" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestListEventsUnboundedOmitsParams(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		json.NewEncoder(w).Encode(map[string]any{"items": []calendar.Event{}})
	}))
	defer srv.Close()

	c := New(srv.URL, "", staticToken("tok"), nil)
	if _, err := c.ListEvents(context.Background(), "primary", time.Time{}, time.Time{}); err != nil {
		t.Fatalf("ListEvents error: %v", err)
	}
	if query != "calendarId=primary" {
		t.Fatalf("zero bounds should be omitted, got query %q", query)
	}
}

func TestNoTokenFailsBeforeNetwork(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	c := New(srv.URL, "", staticToken(""), nil)
	_, err := c.CreateEvent(context.Background(), "primary", calendar.EventPatch{})
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if requests != 0 {
		t.Fatalf("no request should be sent without a token, saw %d", requests)
	}
}

func TestRemoteErrorCarriesOperation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, "", staticToken("tok"), nil)
	_, err := c.ListEvents(context.Background(), "primary", time.Time{}, time.Time{})

	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if remote.Op != "listEvents" || remote.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected error detail: %+v", remote)
	}
}

func TestCreateAndUpdateShareUpsertEndpoint(t *testing.T) {
	var bodies []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/functions/v1/google-event-upsert" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		bodies = append(bodies, body)
		json.NewEncoder(w).Encode(calendar.Event{ID: "assigned"})
	}))
	defer srv.Close()

	c := New(srv.URL, "", staticToken("tok"), nil)
	patch := calendar.EventPatch{
		Summary: "Standup",
		Start:   &calendar.EventDateTime{DateTime: "2024-03-05T09:00"},
		End:     &calendar.EventDateTime{DateTime: "2024-03-05T09:30"},
	}

	created, err := c.CreateEvent(context.Background(), "cal1", patch)
	if err != nil {
		t.Fatalf("CreateEvent error: %v", err)
	}
	if created.ID != "assigned" {
		t.Fatalf("server-assigned id not returned: %+v", created)
	}

	if _, err := c.UpdateEvent(context.Background(), "cal1", "ev9", patch); err != nil {
		t.Fatalf("UpdateEvent error: %v", err)
	}

	if _, hasID := bodies[0]["eventId"]; hasID {
		t.Fatalf("create must not send an eventId: %v", bodies[0])
	}
	if bodies[1]["eventId"] != "ev9" {
		t.Fatalf("update must send the eventId: %v", bodies[1])
	}
	if bodies[1]["calendarId"] != "cal1" {
		t.Fatalf("calendarId missing from upsert body: %v", bodies[1])
	}
}

func TestDeleteEvent(t *testing.T) {
	var method, path string
	var body map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, "", staticToken("tok"), nil)
	if err := c.DeleteEvent(context.Background(), "cal1", "ev1"); err != nil {
		t.Fatalf("DeleteEvent error: %v", err)
	}
	if method != http.MethodDelete || path != "/functions/v1/google-event-delete" {
		t.Fatalf("unexpected request: %s %s", method, path)
	}
	if body["calendarId"] != "cal1" || body["eventId"] != "ev1" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestListCalendarsKeepsServerOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/google_calendars" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("order") != "is_primary.desc" {
			t.Errorf("missing primary-first ordering, query=%q", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode([]calendar.Calendar{
			{CalendarID: "work", CalendarName: "Work", IsPrimary: true},
			{CalendarID: "home", CalendarName: "Home"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "anon", staticToken("tok"), nil)
	cals, err := c.ListCalendars(context.Background())
	if err != nil {
		t.Fatalf("ListCalendars error: %v", err)
	}
	if len(cals) != 2 || cals[0].CalendarID != "work" {
		t.Fatalf("server order not preserved: %+v", cals)
	}
}
