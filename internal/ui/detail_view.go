package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *App) renderDetail() string {
	if m.selected == nil {
		return m.renderGrid()
	}
	e := m.selected

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(primary).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(e.DisplayTitle()))
	b.WriteString("\n\n")

	when := "All day"
	if start, ok := e.Start.Resolve(); ok {
		if e.IsAllDay() {
			when = start.Format("Mon, Jan 2 2006")
			if end, ok := e.End.Resolve(); ok && !end.Equal(start) {
				when += " – " + end.Format("Mon, Jan 2 2006")
			}
		} else {
			when = start.Format("Mon, Jan 2 2006 3:04 PM")
			if end, ok := e.End.Resolve(); ok {
				when += " – " + end.Format("3:04 PM")
			}
		}
	}
	b.WriteString(labelStyle.Render("When:"))
	b.WriteString(when)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString(labelStyle.Render("Where:"))
		b.WriteString(e.Location)
		b.WriteString("\n")
	}

	if e.Description != "" {
		b.WriteString(labelStyle.Render("Notes:"))
		b.WriteString(e.Description)
		b.WriteString("\n")
	}

	if len(e.Attendees) > 0 {
		b.WriteString(labelStyle.Render("Guests:"))
		var names []string
		for _, a := range e.Attendees {
			name := a.Email
			if a.DisplayName != "" {
				name = a.DisplayName
			}
			names = append(names, name)
		}
		b.WriteString(strings.Join(names, ", "))
		b.WriteString("\n")
	}

	if e.RecurringEventID != "" {
		b.WriteString(labelStyle.Render(""))
		b.WriteString(mutedStyle.Italic(true).Render("Part of a recurring series"))
		b.WriteString("\n")
	}

	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n\n")
	}

	help := []string{
		keyStyle.Render("e") + " edit",
		keyStyle.Render("d") + " delete",
		keyStyle.Render("esc") + " back",
	}
	b.WriteString(helpStyle.Render(strings.Join(help, "  ")))

	return b.String()
}

func (m *App) renderConfirmDelete() string {
	var b strings.Builder

	var eventTitle string
	if m.selected != nil {
		eventTitle = m.selected.DisplayTitle()
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(danger)
	b.WriteString(titleStyle.Render("Delete Event?"))
	b.WriteString("\n\n")

	b.WriteString("Are you sure you want to delete \"" + eventTitle + "\"?\n\n")

	b.WriteString(helpStyle.Render("y: yes  n: no"))

	return b.String()
}
