package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const configFileName = "config.yml"

// Defaults applied for zero values
const (
	defaultCacheTTLMinutes = 15
	defaultTheme           = "default"
)

type Config struct {
	// BaseURL is the root of the calendar backend (the project URL hosting
	// the edge functions and the google_calendars table).
	BaseURL string `yaml:"base_url" json:"base_url"`
	// AnonKey is the project API key sent alongside the user's bearer
	// token. Optional for backends that only check the Authorization header.
	AnonKey string `yaml:"anon_key,omitempty" json:"anon_key,omitempty"`

	CacheTTLMinutes int    `yaml:"cache_ttl_minutes" json:"cache_ttl_minutes"`
	Theme           string `yaml:"theme" json:"theme"`
}

func DefaultConfig() Config {
	return Config{
		CacheTTLMinutes: defaultCacheTTLMinutes,
		Theme:           defaultTheme,
	}
}

// Load reads the config file and applies environment overrides. A missing
// file yields the defaults. GRIDCAL_BASE_URL and GRIDCAL_ANON_KEY win over
// the file; a .env in the working directory is honored if present.
func Load() (Config, error) {
	cfg := DefaultConfig()

	configDir, err := getConfigDir()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(filepath.Join(configDir, configFileName))
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultConfig(), err
		}
	} else if !os.IsNotExist(err) {
		return cfg, err
	}

	// Apply defaults for zero values
	if cfg.CacheTTLMinutes == 0 {
		cfg.CacheTTLMinutes = defaultCacheTTLMinutes
	}
	if cfg.Theme == "" {
		cfg.Theme = defaultTheme
	}

	_ = godotenv.Load()
	if v := os.Getenv("GRIDCAL_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("GRIDCAL_ANON_KEY"); v != "" {
		cfg.AnonKey = v
	}

	return cfg, nil
}

func (c Config) Save() error {
	configDir, err := getConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(configDir, configFileName), data, 0600)
}

func getConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "gridcal"), nil
}

func GetConfigDir() (string, error) {
	return getConfigDir()
}
