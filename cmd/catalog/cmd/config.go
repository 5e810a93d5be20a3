package cmd

import (
	"errors"
	"os"
	"time"

	"catalog-backend/internal/components/db"
	"catalog-backend/internal/scrapers/calendar"
	"catalog-backend/pkg/configutil"
)

type CalendarConfig struct {
	BaseUrl           string  `json:"base_url"`
	RequestDelayMs    int     `json:"request_delay_ms"`
	TimeoutSeconds    int     `json:"timeout_seconds"`
	RequestsPerSecond float64 `json:"requests_per_second"`
}

func (c CalendarConfig) Delay() time.Duration {
	return time.Duration(c.RequestDelayMs) * time.Millisecond
}

func (c CalendarConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type Config struct {
	Database db.Config      `json:"database"`
	Calendar CalendarConfig `json:"calendar"`
}

func defaultConfig() Config {
	return Config{
		Calendar: CalendarConfig{
			BaseUrl:           calendar.DefaultBaseUrl,
			RequestDelayMs:    int(calendar.DefaultDelay / time.Millisecond),
			TimeoutSeconds:    30,
			RequestsPerSecond: 2,
		},
	}
}

// loadConfig reads the config file over the defaults, a missing file is not
// an error. Database settings in the environment win over the file.
func loadConfig(path string, getenv func(string) string) (Config, error) {
	cfg := defaultConfig()
	err := configutil.ReadConfigInto(path, &cfg)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}
	cfg.Database.ApplyEnv(getenv)
	return cfg, nil
}
