package cli

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"gridcal/config"
	"gridcal/internal/api"
	"gridcal/internal/auth"
	"gridcal/internal/cache"
	"gridcal/internal/logging"
	"gridcal/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "gridcal",
	Short: "A month-grid calendar client in your terminal",
	Long:  "gridcal - browse and edit your connected calendars from the terminal",
	Run: func(cmd *cobra.Command, args []string) {
		runTUI()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(calendarsCmd)
	rootCmd.AddCommand(agendaCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// bootstrap loads everything the authenticated commands need.
func bootstrap() (config.Config, *auth.Session, *api.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if cfg.BaseURL == "" {
		return cfg, nil, nil, fmt.Errorf("no backend configured: set base_url in the config file or GRIDCAL_BASE_URL")
	}

	session, err := auth.LoadSession()
	if err != nil {
		return cfg, nil, nil, fmt.Errorf("loading session: %w", err)
	}
	if session == nil {
		return cfg, nil, nil, fmt.Errorf("not signed in: run 'gridcal login' first")
	}

	client := api.New(cfg.BaseURL, cfg.AnonKey, session, logging.NewLogger())
	return cfg, session, client, nil
}

func runTUI() {
	cfg, _, client, err := bootstrap()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	store, err := cache.New(time.Duration(cfg.CacheTTLMinutes) * time.Minute)
	if err != nil {
		// The cache is an optimization; run without it.
		store = nil
	}

	p := tea.NewProgram(
		ui.NewApp(client, store, logging.NewLogger()),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
