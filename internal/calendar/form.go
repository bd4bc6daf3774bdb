package calendar

import (
	"strings"
	"time"
)

// FormFields is the editable projection of an event. Start and End hold
// either an ISO local date (all-day) or an ISO local datetime truncated to
// minute precision (timed) — the same strings the form inputs edit.
type FormFields struct {
	Title       string
	Description string
	Location    string
	AllDay      bool
	Start       string
	End         string
}

// ToFormFields derives editable fields from an event. With a nil event and
// a fallback date (the user clicked an empty day) it produces an all-day
// draft spanning that single date. Seconds are dropped from timed values.
func ToFormFields(e *Event, fallback *time.Time) FormFields {
	if e == nil {
		var f FormFields
		f.AllDay = true
		if fallback != nil {
			day := fallback.Format(DateLayout)
			f.Start = day
			f.End = day
		}
		return f
	}

	f := FormFields{
		Title:       e.Summary,
		Description: e.Description,
		Location:    e.Location,
		AllDay:      e.IsAllDay(),
	}
	f.Start = formatInput(e.Start, f.AllDay)
	f.End = formatInput(e.End, f.AllDay)
	return f
}

func formatInput(dt *EventDateTime, allDay bool) string {
	if dt.IsZero() {
		return ""
	}
	if allDay {
		if dt.Date != "" {
			return dt.Date
		}
		if t, ok := dt.Resolve(); ok {
			return t.Format(DateLayout)
		}
		return ""
	}
	if t, ok := dt.Resolve(); ok {
		return t.Format(DateTimeLayout)
	}
	return ""
}

// Patch converts the fields back into the wire patch. All-day fields emit
// date-only spans, timed fields emit minute-precision datetimes. Title,
// description and location are carried verbatim, empty strings included.
func (f FormFields) Patch() EventPatch {
	p := EventPatch{
		Summary:     f.Title,
		Description: f.Description,
		Location:    f.Location,
	}
	if f.AllDay {
		p.Start = &EventDateTime{Date: datePart(f.Start)}
		p.End = &EventDateTime{Date: datePart(f.End)}
	} else {
		p.Start = &EventDateTime{DateTime: f.Start}
		p.End = &EventDateTime{DateTime: f.End}
	}
	return p
}

// SetAllDay flips the timed/all-day classification without losing the date
// portion already entered: switching to all-day strips the time-of-day,
// switching to timed appends a default start-of-day time.
func (f *FormFields) SetAllDay(allDay bool) {
	if f.AllDay == allDay {
		return
	}
	f.AllDay = allDay
	if allDay {
		f.Start = datePart(f.Start)
		f.End = datePart(f.End)
		return
	}
	f.Start = withTimePart(f.Start)
	f.End = withTimePart(f.End)
}

func datePart(input string) string {
	if i := strings.IndexByte(input, 'T'); i >= 0 {
		return input[:i]
	}
	return input
}

func withTimePart(input string) string {
	if input == "" || strings.ContainsRune(input, 'T') {
		return input
	}
	return input + "T00:00"
}
