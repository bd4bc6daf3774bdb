package calendar

import "time"

// Number of event summaries shown inside a day cell before collapsing the
// rest into a "+N more" marker.
const MaxVisibleEvents = 2

// DayCell is one cell of a month grid. Padding cells before the 1st of the
// month have a zero Date and no events.
type DayCell struct {
	Date    time.Time
	Events  []Event
	IsToday bool
}

// IsPadding reports whether the cell is a leading placeholder.
func (c DayCell) IsPadding() bool {
	return c.Date.IsZero()
}

// Visible returns the events rendered inside the cell, at most
// MaxVisibleEvents of them.
func (c DayCell) Visible() []Event {
	if len(c.Events) <= MaxVisibleEvents {
		return c.Events
	}
	return c.Events[:MaxVisibleEvents]
}

// Overflow returns how many events are hidden behind the "+N more" marker.
func (c DayCell) Overflow() int {
	if n := len(c.Events) - MaxVisibleEvents; n > 0 {
		return n
	}
	return 0
}

// BuildMonthGrid lays a month's events into day cells. The result starts
// with one padding cell per weekday before the 1st (Sunday-based week) and
// then one cell per day of the month, so its length is always the weekday
// offset of day 1 plus the number of days in the month.
//
// Events bucket under the calendar date of their start; events without a
// derivable start are silently excluded. Within a day, events keep the
// order they arrived in — no sorting by start time. The function is pure:
// the same (year, month, events, now) always yields the same grid.
func BuildMonthGrid(year int, month time.Month, events []Event, now time.Time) []DayCell {
	firstDay := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := firstDay.AddDate(0, 1, -1).Day()
	leading := int(firstDay.Weekday())

	byDay := make(map[string][]Event)
	for _, e := range events {
		day, ok := e.StartDay()
		if !ok {
			continue
		}
		key := day.Format(DateLayout)
		byDay[key] = append(byDay[key], e)
	}

	today := now.Format(DateLayout)

	cells := make([]DayCell, 0, leading+daysInMonth)
	for i := 0; i < leading; i++ {
		cells = append(cells, DayCell{})
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
		key := date.Format(DateLayout)
		cells = append(cells, DayCell{
			Date:    date,
			Events:  byDay[key],
			IsToday: key == today,
		})
	}

	return cells
}
