package calendar

import (
	"encoding/json"
	"testing"
)

func TestDisplayTitle(t *testing.T) {
	if got := (Event{Summary: "Standup"}).DisplayTitle(); got != "Standup" {
		t.Fatalf("got %q", got)
	}
	if got := (Event{}).DisplayTitle(); got != "Untitled" {
		t.Fatalf("empty summary should display as Untitled, got %q", got)
	}
}

func TestIsAllDay(t *testing.T) {
	cases := []struct {
		name  string
		start *EventDateTime
		want  bool
	}{
		{"timed", &EventDateTime{DateTime: "2024-03-05T09:00:00Z"}, false},
		{"all-day", &EventDateTime{Date: "2024-03-05"}, true},
		{"no start", nil, false},
		{"empty start", &EventDateTime{}, false},
	}
	for _, tc := range cases {
		if got := (Event{Start: tc.start}).IsAllDay(); got != tc.want {
			t.Errorf("%s: IsAllDay() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestStartDay(t *testing.T) {
	e := Event{Start: &EventDateTime{DateTime: "2024-03-05T09:00:00Z"}}
	day, ok := e.StartDay()
	if !ok {
		t.Fatalf("expected a derivable start")
	}
	if day.Format(DateLayout) != "2024-03-05" {
		t.Fatalf("got %v", day)
	}
	if day.Hour() != 0 || day.Minute() != 0 {
		t.Fatalf("bucket key should ignore time-of-day: %v", day)
	}

	if _, ok := (Event{}).StartDay(); ok {
		t.Fatalf("event without a start has no bucket key")
	}
	if _, ok := (Event{Start: &EventDateTime{DateTime: "not-a-time"}}).StartDay(); ok {
		t.Fatalf("malformed start should not resolve")
	}
}

func TestEventWireShape(t *testing.T) {
	raw := `{
		"id": "ev1",
		"summary": "Standup",
		"start": {"dateTime": "2024-03-05T09:00:00Z", "timeZone": "UTC"},
		"end": {"dateTime": "2024-03-05T09:30:00Z"},
		"attendees": [{"email": "a@example.com", "displayName": "A", "responseStatus": "accepted"}],
		"recurringEventId": "parent1"
	}`

	var e Event
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if e.ID != "ev1" || e.Start.TimeZone != "UTC" || e.RecurringEventID != "parent1" {
		t.Fatalf("unexpected event: %+v", e)
	}
	if len(e.Attendees) != 1 || e.Attendees[0].Email != "a@example.com" {
		t.Fatalf("attendees not decoded: %+v", e.Attendees)
	}

	// A patch for an all-day span must not leak empty dateTime fields.
	data, err := json.Marshal(EventPatch{Start: &EventDateTime{Date: "2024-03-05"}, End: &EventDateTime{Date: "2024-03-05"}})
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if string(data) == "" || json.Valid(data) == false {
		t.Fatalf("bad patch payload: %s", data)
	}
	var decoded map[string]any
	_ = json.Unmarshal(data, &decoded)
	start := decoded["start"].(map[string]any)
	if _, ok := start["dateTime"]; ok {
		t.Fatalf("all-day patch carries a dateTime field: %s", data)
	}
}
