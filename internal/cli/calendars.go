package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var calendarsCmd = &cobra.Command{
	Use:     "calendars",
	Aliases: []string{"cals"},
	Short:   "List connected calendars",
	Run: func(cmd *cobra.Command, args []string) {
		runCalendarList()
	},
}

func runCalendarList() {
	_, _, client, err := bootstrap()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	calendars, err := client.ListCalendars(context.Background())
	if err != nil {
		fmt.Printf("Error listing calendars: %v\n", err)
		os.Exit(1)
	}

	if len(calendars) == 0 {
		fmt.Println("No calendars connected.")
		return
	}

	for _, cal := range calendars {
		marker := "  "
		if cal.IsPrimary {
			marker = "* "
		}
		fmt.Printf("%s%s (%s)\n", marker, cal.CalendarName, cal.CalendarID)
	}
}
