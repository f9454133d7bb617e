package app

import (
	"log/slog"

	"fertdash.agstats.org/internal/appconf"
	"fertdash.agstats.org/internal/worldbank"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config      appconf.Config
	WBConfig    worldbank.Config
	Logger      *slog.Logger
	DataManager *worldbank.Manager
}
