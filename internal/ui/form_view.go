package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gridcal/internal/calendar"
)

// Form focus order
const (
	focusTitle = iota
	focusDescription
	focusLocation
	focusAllDay
	focusStart
	focusEnd
	formFieldCount
)

const (
	datePlaceholder     = "YYYY-MM-DD"
	dateTimePlaceholder = "YYYY-MM-DDTHH:MM"
)

type eventForm struct {
	title       textinput.Model
	description textinput.Model
	location    textinput.Model
	start       textinput.Model
	end         textinput.Model
	allDay      bool
	editID      string
}

// openForm builds the form from the current selection: the selected event
// when editing, otherwise an all-day draft on the draft date.
func (m *App) openForm() {
	fields := calendar.ToFormFields(m.selected, m.draftDate)

	f := eventForm{
		title:       textinput.New(),
		description: textinput.New(),
		location:    textinput.New(),
		start:       textinput.New(),
		end:         textinput.New(),
		allDay:      fields.AllDay,
	}
	if m.selected != nil {
		f.editID = m.selected.ID
	}

	f.title.Placeholder = "Event title"
	f.title.SetValue(fields.Title)
	f.title.Focus()

	f.description.Placeholder = "Description (optional)"
	f.description.SetValue(fields.Description)

	f.location.Placeholder = "Location (optional)"
	f.location.SetValue(fields.Location)

	f.start.SetValue(fields.Start)
	f.end.SetValue(fields.End)
	f.syncPlaceholders()

	m.form = f
	m.formFocusIdx = focusTitle
	m.view = viewForm
}

func (f *eventForm) syncPlaceholders() {
	if f.allDay {
		f.start.Placeholder = datePlaceholder
		f.end.Placeholder = datePlaceholder
	} else {
		f.start.Placeholder = dateTimePlaceholder
		f.end.Placeholder = dateTimePlaceholder
	}
}

// fields snapshots the inputs back into the conversion layer's shape.
func (f *eventForm) fields() calendar.FormFields {
	return calendar.FormFields{
		Title:       f.title.Value(),
		Description: f.description.Value(),
		Location:    f.location.Value(),
		AllDay:      f.allDay,
		Start:       f.start.Value(),
		End:         f.end.Value(),
	}
}

// toggleAllDay flips the classification while keeping the date portion the
// user already typed.
func (f *eventForm) toggleAllDay() {
	fields := f.fields()
	fields.SetAllDay(!f.allDay)
	f.allDay = fields.AllDay
	f.start.SetValue(fields.Start)
	f.end.SetValue(fields.End)
	f.syncPlaceholders()
}

func (m *App) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = viewGrid
		m.selected = nil
		m.draftDate = nil
		return m, nil

	case "tab", "down":
		m.formFocusIdx = (m.formFocusIdx + 1) % formFieldCount
		m.updateFormFocus()
		return m, nil

	case "shift+tab", "up":
		m.formFocusIdx = (m.formFocusIdx + formFieldCount - 1) % formFieldCount
		m.updateFormFocus()
		return m, nil

	case " ", "enter":
		if m.formFocusIdx == focusAllDay {
			m.form.toggleAllDay()
			return m, nil
		}
		if msg.String() == "enter" {
			return m, m.saveEvent()
		}

	case "ctrl+s":
		return m, m.saveEvent()
	}

	return m.updateForm(msg)
}

func (m *App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.form.title, cmd = m.form.title.Update(msg)
	cmds = append(cmds, cmd)

	m.form.description, cmd = m.form.description.Update(msg)
	cmds = append(cmds, cmd)

	m.form.location, cmd = m.form.location.Update(msg)
	cmds = append(cmds, cmd)

	m.form.start, cmd = m.form.start.Update(msg)
	cmds = append(cmds, cmd)

	m.form.end, cmd = m.form.end.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *App) updateFormFocus() {
	m.form.title.Blur()
	m.form.description.Blur()
	m.form.location.Blur()
	m.form.start.Blur()
	m.form.end.Blur()

	switch m.formFocusIdx {
	case focusTitle:
		m.form.title.Focus()
	case focusDescription:
		m.form.description.Focus()
	case focusLocation:
		m.form.location.Focus()
	case focusStart:
		m.form.start.Focus()
	case focusEnd:
		m.form.end.Focus()
	}
}

func (m *App) renderForm(title string) string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(primary).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	label := func(idx int, name string) string {
		if m.formFocusIdx == idx {
			return focusedLabelStyle.Render(name)
		}
		return labelStyle.Render(name)
	}

	b.WriteString(label(focusTitle, "Title:"))
	b.WriteString(m.form.title.View())
	b.WriteString("\n")

	b.WriteString(label(focusDescription, "Description:"))
	b.WriteString(m.form.description.View())
	b.WriteString("\n")

	b.WriteString(label(focusLocation, "Location:"))
	b.WriteString(m.form.location.View())
	b.WriteString("\n")

	b.WriteString(label(focusAllDay, "All day:"))
	check := "[ ]"
	if m.form.allDay {
		check = "[x]"
	}
	if m.formFocusIdx == focusAllDay {
		check = lipgloss.NewStyle().Background(primary).Foreground(text).Render(check)
		check += helpStyle.Render("  space to toggle")
	}
	b.WriteString(check)
	b.WriteString("\n")

	startLabel, endLabel := "Start date:", "End date:"
	if !m.form.allDay {
		startLabel, endLabel = "Start:", "End:"
	}

	b.WriteString(label(focusStart, startLabel))
	b.WriteString(m.form.start.View())
	b.WriteString("\n")

	b.WriteString(label(focusEnd, endLabel))
	b.WriteString(m.form.end.View())
	b.WriteString("\n\n")

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n\n")
	}

	b.WriteString(helpStyle.Render("Tab: next field  Ctrl+S: save  Esc: cancel"))

	return b.String()
}
