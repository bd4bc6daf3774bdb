package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"gridcal/internal/calendar"
)

var agendaCmd = &cobra.Command{
	Use:   "agenda [YYYY-MM]",
	Short: "Print a month's events without opening the TUI",
	Long: `Print the events of a month, day by day, for the primary calendar.

Defaults to the current month when no month is given.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		month := time.Now()
		if len(args) == 1 {
			parsed, err := time.ParseInLocation("2006-01", args[0], time.Local)
			if err != nil {
				fmt.Printf("Invalid month %q, expected YYYY-MM\n", args[0])
				os.Exit(1)
			}
			month = parsed
		}
		runAgenda(month)
	},
}

func runAgenda(month time.Time) {
	_, _, client, err := bootstrap()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	ctx := context.Background()
	calendars, err := client.ListCalendars(ctx)
	if err != nil {
		fmt.Printf("Error listing calendars: %v\n", err)
		os.Exit(1)
	}
	if len(calendars) == 0 {
		fmt.Println("No calendars connected.")
		os.Exit(1)
	}

	// Calendars arrive primary-first, so the first one is the default.
	cal := calendars[0]
	monthStart := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.Local)
	events, err := client.ListEvents(ctx, cal.CalendarID, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		fmt.Printf("Error listing events: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s — %s\n\n", monthStart.Format("January 2006"), cal.CalendarName)

	cells := calendar.BuildMonthGrid(monthStart.Year(), monthStart.Month(), events, time.Now())
	printed := 0
	for _, cell := range cells {
		if cell.IsPadding() || len(cell.Events) == 0 {
			continue
		}
		fmt.Println(cell.Date.Format("Mon, Jan 2"))
		for _, e := range cell.Events {
			when := "all day"
			if !e.IsAllDay() {
				if start, ok := e.Start.Resolve(); ok {
					when = start.Format("15:04")
				}
			}
			fmt.Printf("  %-7s %s\n", when, e.DisplayTitle())
			printed++
		}
	}

	if printed == 0 {
		fmt.Println("No events this month.")
	}
}
