package calendar

import (
	"fmt"
	"time"
)

// Wire formats used by the backend
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04"
)

// EventDateTime is one end of an event's span. Exactly one of DateTime or
// Date is set: DateTime for timed events, Date for all-day events.
type EventDateTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// IsZero reports whether neither a dateTime nor a date is present.
func (dt *EventDateTime) IsZero() bool {
	return dt == nil || (dt.DateTime == "" && dt.Date == "")
}

// Resolve parses the span end into a concrete time. Returns ok=false when
// neither field is present or the value does not parse.
func (dt *EventDateTime) Resolve() (time.Time, bool) {
	if dt == nil {
		return time.Time{}, false
	}
	if dt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, dt.DateTime); err == nil {
			return t, true
		}
		// Form inputs carry minute precision without a zone offset.
		if t, err := time.ParseInLocation(DateTimeLayout, dt.DateTime, time.Local); err == nil {
			return t, true
		}
		return time.Time{}, false
	}
	if dt.Date != "" {
		if t, err := time.ParseInLocation(DateLayout, dt.Date, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Attendee is an event participant. ResponseStatus comes back from the
// provider and is never sent by this client.
type Attendee struct {
	Email          string `json:"email"`
	DisplayName    string `json:"displayName,omitempty"`
	ResponseStatus string `json:"responseStatus,omitempty"`
}

// Event is a calendar event as the backend serves it. IDs are assigned by
// the provider and stable across updates.
type Event struct {
	ID               string         `json:"id"`
	Summary          string         `json:"summary,omitempty"`
	Description      string         `json:"description,omitempty"`
	Location         string         `json:"location,omitempty"`
	Start            *EventDateTime `json:"start,omitempty"`
	End              *EventDateTime `json:"end,omitempty"`
	ColorID          string         `json:"colorId,omitempty"`
	Attendees        []Attendee     `json:"attendees,omitempty"`
	RecurringEventID string         `json:"recurringEventId,omitempty"`
}

// DisplayTitle returns the summary, or "Untitled" when it is empty.
func (e Event) DisplayTitle() string {
	if e.Summary == "" {
		return "Untitled"
	}
	return e.Summary
}

// IsAllDay reports whether the event spans whole calendar days. An event is
// all-day iff its start carries a date-only value and no time-of-day.
func (e Event) IsAllDay() bool {
	return e.Start != nil && e.Start.DateTime == "" && e.Start.Date != ""
}

// StartDay resolves the event's bucket key: the calendar date of its start,
// ignoring time-of-day. ok=false means the event has no derivable start and
// cannot be placed on a grid.
func (e Event) StartDay() (time.Time, bool) {
	t, ok := e.Start.Resolve()
	if !ok {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()), true
}

// EventPatch is the mutable subset of an event sent on create and update.
// The client always sends all five fields together, so an update is a full
// replace from its point of view.
type EventPatch struct {
	Summary     string         `json:"summary"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	Start       *EventDateTime `json:"start,omitempty"`
	End         *EventDateTime `json:"end,omitempty"`
}

// Validate rejects spans whose end is strictly earlier than their start.
// The backend does not enforce this, so the client must.
func (p EventPatch) Validate() error {
	start, ok := p.Start.Resolve()
	if !ok {
		return fmt.Errorf("event start is missing or malformed")
	}
	end, ok := p.End.Resolve()
	if !ok {
		return fmt.Errorf("event end is missing or malformed")
	}
	if end.Before(start) {
		return fmt.Errorf("event ends before it starts")
	}
	return nil
}

// Calendar is one connected calendar. Primary calendars sort first in
// listings; the ordering is applied server-side.
type Calendar struct {
	CalendarID   string `json:"calendar_id" yaml:"calendar_id"`
	CalendarName string `json:"calendar_name" yaml:"calendar_name"`
	IsPrimary    bool   `json:"is_primary" yaml:"is_primary"`
}
