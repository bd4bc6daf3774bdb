package updater

import (
	"context"
	"fmt"
	"os"

	"github.com/creativeprojects/go-selfupdate"
)

const repoSlug = "guiyumin/gridcal"

// Version is set at build time via -ldflags.
var Version = "dev"

// Update replaces the current binary with the latest released version.
func Update() error {
	ctx := context.Background()

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repoSlug))
	if err != nil {
		return fmt.Errorf("checking for updates: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", repoSlug)
	}

	if latest.LessOrEqual(Version) {
		fmt.Printf("gridcal %s is already the latest version.\n", Version)
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locating executable: %w", err)
	}

	fmt.Printf("Updating to %s...\n", latest.Version())
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("applying update: %w", err)
	}

	fmt.Printf("Updated to gridcal %s.\n", latest.Version())
	return nil
}
