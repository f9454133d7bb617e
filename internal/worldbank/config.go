package worldbank

import (
	"time"

	"fertdash.agstats.org/internal/appconf"
)

const (
	// DefaultBaseURL is the public World Bank API endpoint
	DefaultBaseURL = "https://api.worldbank.org/v2"

	// DefaultIndicator is fertilizer consumption in kg per hectare of arable land
	DefaultIndicator = "AG.CON.FERT.ZS"
)

// Config holds the settings for the World Bank data pipeline
type Config struct {
	BaseURL         string // API endpoint, overridable for tests and mirrors
	Indicator       string // indicator code to fetch
	DataPath        string // SQLite path, or ":memory:"
	PerPage         int    // page size for indicator requests
	RequestTimeout  time.Duration
	RefreshInterval time.Duration // 0 disables periodic refresh
	Env             appconf.Environment
	Verbose         bool
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Indicator == "" {
		c.Indicator = DefaultIndicator
	}
	if c.PerPage <= 0 {
		c.PerPage = 1000
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 60 * time.Second
	}
	return c
}
