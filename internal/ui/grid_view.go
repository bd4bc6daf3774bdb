package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gridcal/internal/calendar"
)

const (
	cellWidth  = 12
	cellHeight = 4 // day number + 2 event chips + overflow line
)

func (m *App) renderGrid() string {
	var b strings.Builder

	header := m.visibleMonth.Format("January 2006")
	if len(m.calendars) > 0 {
		header += "  ·  " + m.calendars[m.calendarIdx].CalendarName
	}
	if m.loading {
		header += "  …"
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")

	for _, day := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		b.WriteString(weekdayStyle.Render(day))
	}
	b.WriteString("\n")

	cells := calendar.BuildMonthGrid(m.visibleMonth.Year(), m.visibleMonth.Month(), m.events, m.now())
	b.WriteString(m.renderCells(cells))
	b.WriteString("\n")

	b.WriteString(mutedStyle.Render(strings.Repeat("─", min(m.width, 7*cellWidth))))
	b.WriteString("\n\n")

	b.WriteString(boldStyle.Render(m.cursor.Format("Mon, Jan 2")))
	b.WriteString("\n\n")

	dayEvents := m.cursorDayEvents()
	if len(dayEvents) == 0 {
		b.WriteString(mutedStyle.Italic(true).Render("  No events"))
		b.WriteString("\n")
	} else {
		for i, event := range dayEvents {
			b.WriteString(m.renderEventLine(event, i == m.selectedIdx))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString(helpStyle.Render("  (esc to dismiss)"))
		b.WriteString("\n")
	}

	b.WriteString(m.renderHelpBar())

	return b.String()
}

// renderCells draws the month grid one week row at a time. Cells before the
// 1st are blank; trailing slots after the last day are blank too, purely to
// square off the final row.
func (m *App) renderCells(cells []calendar.DayCell) string {
	var rows []string

	for start := 0; start < len(cells); start += 7 {
		week := cells[start:]
		if len(week) > 7 {
			week = week[:7]
		}

		var rendered []string
		for _, cell := range week {
			rendered = append(rendered, m.renderCell(cell))
		}
		for len(rendered) < 7 {
			rendered = append(rendered, m.renderCell(calendar.DayCell{}))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}

	return strings.Join(rows, "\n")
}

func (m *App) renderCell(cell calendar.DayCell) string {
	box := lipgloss.NewStyle().Width(cellWidth).Height(cellHeight).Padding(0, 1)

	if cell.IsPadding() {
		return box.Render("")
	}

	var lines []string

	number := fmt.Sprintf("%2d", cell.Date.Day())
	switch {
	case cell.Date.Equal(m.cursor):
		lines = append(lines, cursorNumberStyle.Render(number))
	case cell.IsToday:
		lines = append(lines, todayNumberStyle.Render(number+"•"))
	default:
		lines = append(lines, dayNumberStyle.Render(number))
	}

	for _, e := range cell.Visible() {
		lines = append(lines, chipStyle.Render(truncate(e.DisplayTitle(), cellWidth-2)))
	}
	if n := cell.Overflow(); n > 0 {
		lines = append(lines, overflowStyle.Render(fmt.Sprintf("+%d more", n)))
	}

	return box.Render(strings.Join(lines, "\n"))
}

func (m *App) renderEventLine(event calendar.Event, selected bool) string {
	timeStr := "All day"
	if !event.IsAllDay() {
		if start, ok := event.Start.Resolve(); ok {
			timeStr = start.Format("3:04 PM")
			if end, ok := event.End.Resolve(); ok {
				timeStr = fmt.Sprintf("%s - %s", timeStr, end.Format("3:04 PM"))
			}
		}
	}

	timeStyle := mutedStyle.Width(20)
	titleStyle := lipgloss.NewStyle().Foreground(text)

	var prefix string
	if selected {
		prefix = lipgloss.NewStyle().Foreground(primary).Render("▸ ")
		titleStyle = titleStyle.Bold(true)
	} else {
		prefix = "  "
	}

	line := prefix + timeStyle.Render(timeStr) + titleStyle.Render(event.DisplayTitle())
	if event.Location != "" {
		line += mutedStyle.Render("  @ " + event.Location)
	}
	return line
}

func (m *App) renderHelpBar() string {
	help := []string{
		keyStyle.Render("←→↑↓") + " move",
		keyStyle.Render("H/L") + " month",
		keyStyle.Render("t") + " today",
		keyStyle.Render("enter") + " open",
		keyStyle.Render("a") + " add",
		keyStyle.Render("c") + " calendar",
		keyStyle.Render("r") + " reload",
		keyStyle.Render("q") + " quit",
	}
	return helpStyle.Render(strings.Join(help, "  "))
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
