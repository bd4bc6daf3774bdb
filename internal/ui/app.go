package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gridcal/internal/api"
	"gridcal/internal/cache"
	"gridcal/internal/calendar"
)

// View states
type appView int

const (
	viewGrid appView = iota
	viewDetail
	viewForm
	viewConfirmDelete
)

// App is the calendar TUI model. All selection and session state lives
// here; views are pure renderings of it.
type App struct {
	client *api.Client
	store  *cache.Cache
	log    *zap.Logger

	width  int
	height int

	calendars   []calendar.Calendar
	calendarIdx int

	visibleMonth time.Time // first day of the rendered month
	cursor       time.Time // day the cursor is on
	events       []calendar.Event
	selectedIdx  int // selected event within the cursor day

	view      appView
	selected  *calendar.Event
	draftDate *time.Time

	form         eventForm
	formFocusIdx int

	loading bool
	errMsg  string

	clock func() time.Time

	// fetchID tags the most recent events fetch. Responses carrying an
	// older tag are stale and dropped instead of overwriting state.
	fetchID string
}

// Messages
type calendarsLoadedMsg struct {
	calendars []calendar.Calendar
}

type eventsLoadedMsg struct {
	fetchID string
	events  []calendar.Event
}

type eventSavedMsg struct{}

type eventDeletedMsg struct{}

type errMsg struct {
	err error
}

// NewApp creates the calendar TUI.
func NewApp(client *api.Client, store *cache.Cache, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	now := time.Now()
	return &App{
		client:       client,
		store:        store,
		log:          log,
		visibleMonth: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local),
		cursor:       time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local),
		view:         viewGrid,
		clock:        time.Now,
	}
}

func (m *App) now() time.Time {
	return m.clock()
}

func (m *App) Init() tea.Cmd {
	return m.loadCalendars()
}

func (m *App) loadCalendars() tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		calendars, err := m.client.ListCalendars(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return calendarsLoadedMsg{calendars}
	}
}

// monthWindow returns the inclusive bounds of the visible month.
func (m *App) monthWindow() (time.Time, time.Time) {
	return m.visibleMonth, m.visibleMonth.AddDate(0, 1, 0)
}

// loadEvents replaces the event list with the visible month of the selected
// calendar, going through the read-through cache. The returned command is
// tagged so that a response arriving after the month or calendar changed
// again is discarded.
func (m *App) loadEvents() tea.Cmd {
	if len(m.calendars) == 0 {
		return nil
	}
	calendarID := m.calendars[m.calendarIdx].CalendarID
	timeMin, timeMax := m.monthWindow()

	fetchID := uuid.NewString()
	m.fetchID = fetchID
	m.loading = true

	return func() tea.Msg {
		if m.store != nil {
			if events, ok := m.store.Get(calendarID, timeMin, timeMax); ok {
				return eventsLoadedMsg{fetchID: fetchID, events: events}
			}
		}

		events, err := m.client.ListEvents(context.Background(), calendarID, timeMin, timeMax)
		if err != nil {
			return errMsg{err}
		}
		if m.store != nil {
			if err := m.store.Put(calendarID, timeMin, timeMax, events); err != nil {
				m.log.Warn("cache write failed", zap.Error(err))
			}
		}
		return eventsLoadedMsg{fetchID: fetchID, events: events}
	}
}

func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case calendarsLoadedMsg:
		m.loading = false
		m.calendars = msg.calendars
		m.calendarIdx = 0
		return m, m.loadEvents()

	case eventsLoadedMsg:
		if msg.fetchID != m.fetchID {
			// Stale response from a superseded fetch.
			return m, nil
		}
		m.loading = false
		m.events = msg.events
		m.clampSelection()
		return m, nil

	case eventSavedMsg:
		m.loading = false
		m.view = viewGrid
		m.selected = nil
		m.draftDate = nil
		return m, m.loadEvents()

	case eventDeletedMsg:
		m.loading = false
		m.view = viewGrid
		m.selected = nil
		m.selectedIdx = 0
		return m, m.loadEvents()

	case errMsg:
		// Keep the current view and whatever events we had; just surface
		// the message until the user dismisses it.
		m.loading = false
		m.errMsg = msg.err.Error()
		m.log.Warn("operation failed", zap.String("error", m.errMsg))
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	if m.view == viewForm {
		return m.updateForm(msg)
	}

	return m, nil
}

func (m *App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.view {
	case viewGrid:
		return m.handleGridKeys(msg)
	case viewDetail:
		return m.handleDetailKeys(msg)
	case viewForm:
		return m.handleFormKeys(msg)
	case viewConfirmDelete:
		return m.handleConfirmKeys(msg)
	}
	return m, nil
}

func (m *App) handleGridKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		if m.errMsg != "" {
			m.errMsg = ""
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, keys.Left):
		return m.moveCursor(-1)

	case key.Matches(msg, keys.Right):
		return m.moveCursor(1)

	case key.Matches(msg, keys.Up):
		if m.selectedIdx > 0 {
			m.selectedIdx--
			return m, nil
		}
		return m.moveCursor(-7)

	case key.Matches(msg, keys.Down):
		if m.selectedIdx < len(m.cursorDayEvents())-1 {
			m.selectedIdx++
			return m, nil
		}
		return m.moveCursor(7)

	case key.Matches(msg, keys.PrevMonth):
		return m.moveMonth(-1)

	case key.Matches(msg, keys.NextMonth):
		return m.moveMonth(1)

	case key.Matches(msg, keys.Today):
		now := m.now()
		m.cursor = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
		m.selectedIdx = 0
		return m.setMonth(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local))

	case key.Matches(msg, keys.SwitchCalendar):
		if len(m.calendars) > 1 {
			m.calendarIdx = (m.calendarIdx + 1) % len(m.calendars)
			m.events = nil
			m.selectedIdx = 0
			return m, m.loadEvents()
		}
		return m, nil

	case key.Matches(msg, keys.Reload):
		return m, m.loadEvents()

	case key.Matches(msg, keys.Add):
		draft := m.cursor
		m.draftDate = &draft
		m.selected = nil
		m.openForm()
		return m, nil

	case key.Matches(msg, keys.Open):
		dayEvents := m.cursorDayEvents()
		if len(dayEvents) > 0 && m.selectedIdx < len(dayEvents) {
			ev := dayEvents[m.selectedIdx]
			m.selected = &ev
			m.view = viewDetail
			return m, nil
		}
		// An empty day opens a draft for that date.
		draft := m.cursor
		m.draftDate = &draft
		m.selected = nil
		m.openForm()
		return m, nil
	}

	return m, nil
}

func (m *App) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.view = viewGrid
		m.selected = nil
		return m, nil

	case key.Matches(msg, keys.Edit):
		if m.selected != nil {
			m.draftDate = nil
			m.openForm()
		}
		return m, nil

	case key.Matches(msg, keys.Delete):
		if m.selected != nil {
			m.view = viewConfirmDelete
		}
		return m, nil
	}
	return m, nil
}

func (m *App) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		if m.selected != nil {
			return m, m.deleteEvent(m.selected.ID)
		}
		m.view = viewGrid
		return m, nil

	case "n", "N", "esc", "q":
		m.view = viewDetail
		return m, nil
	}
	return m, nil
}

func (m *App) moveCursor(days int) (tea.Model, tea.Cmd) {
	m.cursor = m.cursor.AddDate(0, 0, days)
	m.selectedIdx = 0

	month := time.Date(m.cursor.Year(), m.cursor.Month(), 1, 0, 0, 0, 0, time.Local)
	if !month.Equal(m.visibleMonth) {
		return m.setMonth(month)
	}
	return m, nil
}

func (m *App) moveMonth(delta int) (tea.Model, tea.Cmd) {
	month := m.visibleMonth.AddDate(0, delta, 0)
	m.cursor = month
	m.selectedIdx = 0
	return m.setMonth(month)
}

// setMonth switches the visible month. The event list is scoped to one
// (calendar, month) window, so it is dropped and reloaded, not merged.
func (m *App) setMonth(month time.Time) (tea.Model, tea.Cmd) {
	if month.Equal(m.visibleMonth) {
		return m, m.loadEvents()
	}
	m.visibleMonth = month
	m.events = nil
	return m, m.loadEvents()
}

func (m *App) saveEvent() tea.Cmd {
	fields := m.form.fields()
	patch := fields.Patch()
	if err := patch.Validate(); err != nil {
		return func() tea.Msg { return errMsg{err} }
	}

	if len(m.calendars) == 0 {
		return nil
	}
	calendarID := m.calendars[m.calendarIdx].CalendarID
	editID := m.form.editID
	m.loading = true

	return func() tea.Msg {
		var err error
		if editID != "" {
			_, err = m.client.UpdateEvent(context.Background(), calendarID, editID, patch)
		} else {
			_, err = m.client.CreateEvent(context.Background(), calendarID, patch)
		}
		if err != nil {
			return errMsg{err}
		}
		if m.store != nil {
			if err := m.store.Invalidate(calendarID); err != nil {
				m.log.Warn("cache invalidation failed", zap.Error(err))
			}
		}
		return eventSavedMsg{}
	}
}

func (m *App) deleteEvent(eventID string) tea.Cmd {
	if len(m.calendars) == 0 {
		return nil
	}
	calendarID := m.calendars[m.calendarIdx].CalendarID
	m.loading = true

	return func() tea.Msg {
		if err := m.client.DeleteEvent(context.Background(), calendarID, eventID); err != nil {
			return errMsg{err}
		}
		if m.store != nil {
			if err := m.store.Invalidate(calendarID); err != nil {
				m.log.Warn("cache invalidation failed", zap.Error(err))
			}
		}
		return eventDeletedMsg{}
	}
}

func (m *App) cursorDayEvents() []calendar.Event {
	var result []calendar.Event
	for _, e := range m.events {
		if day, ok := e.StartDay(); ok && day.Format(calendar.DateLayout) == m.cursor.Format(calendar.DateLayout) {
			result = append(result, e)
		}
	}
	return result
}

func (m *App) clampSelection() {
	if n := len(m.cursorDayEvents()); m.selectedIdx >= n {
		m.selectedIdx = n - 1
	}
	if m.selectedIdx < 0 {
		m.selectedIdx = 0
	}
}

func (m *App) View() string {
	switch m.view {
	case viewForm:
		title := "New Event"
		if m.form.editID != "" {
			title = "Edit Event"
		}
		return m.renderForm(title)
	case viewDetail:
		return m.renderDetail()
	case viewConfirmDelete:
		return m.renderConfirmDelete()
	default:
		return m.renderGrid()
	}
}

// Key bindings
var keys = struct {
	Quit           key.Binding
	Left           key.Binding
	Right          key.Binding
	Up             key.Binding
	Down           key.Binding
	PrevMonth      key.Binding
	NextMonth      key.Binding
	Today          key.Binding
	Add            key.Binding
	Open           key.Binding
	Edit           key.Binding
	Delete         key.Binding
	Reload         key.Binding
	SwitchCalendar key.Binding
}{
	Quit:           key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	Left:           key.NewBinding(key.WithKeys("left", "h")),
	Right:          key.NewBinding(key.WithKeys("right", "l")),
	Up:             key.NewBinding(key.WithKeys("up", "k")),
	Down:           key.NewBinding(key.WithKeys("down", "j")),
	PrevMonth:      key.NewBinding(key.WithKeys("H", "pageup")),
	NextMonth:      key.NewBinding(key.WithKeys("L", "pagedown")),
	Today:          key.NewBinding(key.WithKeys("t")),
	Add:            key.NewBinding(key.WithKeys("a")),
	Open:           key.NewBinding(key.WithKeys("enter")),
	Edit:           key.NewBinding(key.WithKeys("e")),
	Delete:         key.NewBinding(key.WithKeys("d", "x")),
	Reload:         key.NewBinding(key.WithKeys("r")),
	SwitchCalendar: key.NewBinding(key.WithKeys("c")),
}
