package calendar

import (
	"testing"
	"time"
)

func timedEvent(id, summary, start, end string) Event {
	return Event{
		ID:      id,
		Summary: summary,
		Start:   &EventDateTime{DateTime: start},
		End:     &EventDateTime{DateTime: end},
	}
}

func TestBuildMonthGridShape(t *testing.T) {
	now := time.Date(2024, time.February, 10, 12, 0, 0, 0, time.Local)

	// February 2024 is a leap month; Feb 1 2024 is a Thursday.
	cells := BuildMonthGrid(2024, time.February, nil, now)

	leading := int(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.Local).Weekday())
	if want := leading + 29; len(cells) != want {
		t.Fatalf("expected %d cells, got %d", want, len(cells))
	}

	nonPadding := 0
	for i, c := range cells {
		if i < leading {
			if !c.IsPadding() {
				t.Fatalf("cell %d should be padding", i)
			}
			continue
		}
		if c.IsPadding() {
			t.Fatalf("cell %d should not be padding", i)
		}
		nonPadding++
	}
	if nonPadding != 29 {
		t.Fatalf("expected 29 day cells, got %d", nonPadding)
	}

	todayCells := 0
	for _, c := range cells {
		if c.IsToday {
			todayCells++
			if c.Date.Day() != 10 {
				t.Fatalf("wrong cell flagged as today: %v", c.Date)
			}
		}
	}
	if todayCells != 1 {
		t.Fatalf("expected exactly one today cell, got %d", todayCells)
	}
}

func TestBuildMonthGridBucketsEventsOnce(t *testing.T) {
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)
	events := []Event{
		timedEvent("ev1", "Standup", "2024-03-05T09:00:00Z", "2024-03-05T09:30:00Z"),
		{ID: "ev2", Summary: "Launch", Start: &EventDateTime{Date: "2024-03-05"}, End: &EventDateTime{Date: "2024-03-05"}},
		{ID: "ev3", Summary: "No start"},
	}

	cells := BuildMonthGrid(2024, time.March, events, now)

	seen := map[string]int{}
	for _, c := range cells {
		for _, e := range c.Events {
			seen[e.ID]++
			if c.Date.Format(DateLayout) != "2024-03-05" {
				t.Fatalf("event %s bucketed under %v", e.ID, c.Date)
			}
		}
	}

	if seen["ev1"] != 1 || seen["ev2"] != 1 {
		t.Fatalf("each event should appear exactly once, got %v", seen)
	}
	if seen["ev3"] != 0 {
		t.Fatalf("event without derivable start must not appear on the grid")
	}
}

func TestBuildMonthGridKeepsInsertionOrder(t *testing.T) {
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)
	events := []Event{
		timedEvent("late", "Late", "2024-03-12T18:00:00Z", "2024-03-12T19:00:00Z"),
		timedEvent("early", "Early", "2024-03-12T08:00:00Z", "2024-03-12T09:00:00Z"),
	}

	cells := BuildMonthGrid(2024, time.March, events, now)
	for _, c := range cells {
		if len(c.Events) == 0 {
			continue
		}
		if c.Events[0].ID != "late" || c.Events[1].ID != "early" {
			t.Fatalf("expected insertion order preserved, got %s then %s", c.Events[0].ID, c.Events[1].ID)
		}
	}
}

func TestDayCellOverflow(t *testing.T) {
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)
	var events []Event
	for _, id := range []string{"a", "b", "c", "d"} {
		events = append(events, timedEvent(id, id, "2024-03-20T10:00:00Z", "2024-03-20T11:00:00Z"))
	}

	cells := BuildMonthGrid(2024, time.March, events, now)
	for _, c := range cells {
		if len(c.Events) == 0 {
			if c.Overflow() != 0 {
				t.Fatalf("empty cell reported overflow %d", c.Overflow())
			}
			continue
		}
		if got := len(c.Visible()); got != MaxVisibleEvents {
			t.Fatalf("expected %d visible events, got %d", MaxVisibleEvents, got)
		}
		if c.Overflow() != 2 {
			t.Fatalf("expected overflow 2, got %d", c.Overflow())
		}
	}
}

func TestBuildMonthGridDeterministic(t *testing.T) {
	now := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.Local)
	events := []Event{
		timedEvent("ev1", "One", "2024-03-05T09:00:00Z", "2024-03-05T09:30:00Z"),
		timedEvent("ev2", "Two", "2024-03-28T09:00:00Z", "2024-03-28T09:30:00Z"),
	}

	a := BuildMonthGrid(2024, time.March, events, now)
	b := BuildMonthGrid(2024, time.March, events, now)
	if len(a) != len(b) {
		t.Fatalf("grid length changed between runs: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Date.Equal(b[i].Date) || len(a[i].Events) != len(b[i].Events) || a[i].IsToday != b[i].IsToday {
			t.Fatalf("cell %d differs between runs", i)
		}
	}
}
