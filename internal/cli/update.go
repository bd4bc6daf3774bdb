package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gridcal/internal/updater"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update gridcal to the latest version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return updater.Update()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gridcal version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gridcal %s\n", updater.Version)
	},
}
