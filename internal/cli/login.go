package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gridcal/config"
	"gridcal/internal/api"
	"gridcal/internal/auth"
	"gridcal/internal/logging"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the calendar backend",
	Long: `Sign in with an access token from the backend's hosted login page.

The token is stored under ~/.config/gridcal and attached to every request.`,
	Run: func(cmd *cobra.Command, args []string) {
		runLogin()
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the saved session",
	Run: func(cmd *cobra.Command, args []string) {
		if err := auth.ClearSession(); err != nil {
			fmt.Printf("Error clearing session: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Signed out.")
	},
}

func runLogin() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if cfg.BaseURL == "" {
		fmt.Println("No backend configured. Set base_url in the config file or GRIDCAL_BASE_URL.")
		os.Exit(1)
	}

	session, err := auth.PromptSession()
	if err != nil {
		fmt.Printf("Error reading credentials: %v\n", err)
		os.Exit(1)
	}

	// Verify the token actually works before saving it.
	client := api.New(cfg.BaseURL, cfg.AnonKey, session, logging.NewLogger())
	calendars, err := client.ListCalendars(context.Background())
	if err != nil {
		fmt.Printf("Sign-in check failed: %v\n", err)
		os.Exit(1)
	}

	if err := session.Save(); err != nil {
		fmt.Printf("Error saving session: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nSigned in as %s (%d calendars connected). Run 'gridcal' to start.\n",
		session.Email, len(calendars))
}
