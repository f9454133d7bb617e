package worldbank

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fertdash.agstats.org/fertdb"
	"fertdash.agstats.org/internal/logging"
)

// RawSnapshot retains the raw upstream records from the most recent load for
// the debug inspector page.
type RawSnapshot struct {
	Observations []RawObservation
	Countries    []RawCountry
}

// Manager owns the fetch → normalize → load pipeline and the loaded panel.
// Reads go straight to the database client; Load serializes refreshes so at
// most one fetch is in flight at a time.
type Manager struct {
	config Config
	client *Client
	logger *slog.Logger

	FertDB *fertdb.Client

	loadMu      sync.Mutex
	stateMu     sync.RWMutex
	lastLoaded  time.Time
	loadRuntime time.Duration
	snapshot    RawSnapshot

	shutdownChan chan struct{}
	shutdownOnce sync.Once
	wg           sync.WaitGroup
}

// InitManager creates the database, performs the initial load, and starts
// the periodic refresh when one is configured.
func InitManager(config Config, logger *slog.Logger) (*Manager, error) {
	config = config.withDefaults()

	dbClient, err := fertdb.NewClient(fertdb.NewConfig(config.DataPath, config.Env, config.Verbose))
	if err != nil {
		return nil, fmt.Errorf("failed to create fertilizer database client: %w", err)
	}

	manager := &Manager{
		config:       config,
		client:       NewClient(config),
		logger:       logger,
		FertDB:       dbClient,
		shutdownChan: make(chan struct{}),
	}

	if err := manager.Load(context.Background()); err != nil {
		_ = dbClient.Close()
		return nil, err
	}

	if config.RefreshInterval > 0 {
		manager.wg.Add(1)
		go manager.refreshPeriodically()
	}

	return manager, nil
}

// Load runs the full pipeline: fetch both feeds, normalize, and swap the
// stored panel. The previous panel survives any failure.
func (manager *Manager) Load(ctx context.Context) error {
	manager.loadMu.Lock()
	defer manager.loadMu.Unlock()

	startTime := time.Now()

	rawObservations, err := manager.client.FetchIndicator(ctx)
	if err != nil {
		return fmt.Errorf("error fetching indicator data: %w", err)
	}

	rawCountries, err := manager.client.FetchCountries(ctx)
	if err != nil {
		return fmt.Errorf("error fetching country list: %w", err)
	}

	countries := NormalizeCountries(rawCountries)
	observations := NormalizeObservations(rawObservations, countries)
	if len(observations) == 0 {
		return fmt.Errorf("normalization produced an empty panel: %w", ErrDataUnavailable)
	}

	if err := manager.FertDB.ReplaceAll(ctx, countries, observations); err != nil {
		return fmt.Errorf("error loading panel: %w", err)
	}

	manager.stateMu.Lock()
	manager.lastLoaded = time.Now()
	manager.loadRuntime = time.Since(startTime)
	manager.snapshot = RawSnapshot{Observations: rawObservations, Countries: rawCountries}
	manager.stateMu.Unlock()

	logging.LogOperation(manager.logger, "panel_loaded",
		slog.Int("observations", len(observations)),
		slog.Int("countries", len(countries)),
		slog.Duration("duration", manager.loadRuntime),
	)

	return nil
}

// LastLoaded reports when the panel was last rebuilt.
func (manager *Manager) LastLoaded() time.Time {
	manager.stateMu.RLock()
	defer manager.stateMu.RUnlock()
	return manager.lastLoaded
}

// Snapshot returns the raw records from the most recent load.
func (manager *Manager) Snapshot() RawSnapshot {
	manager.stateMu.RLock()
	defer manager.stateMu.RUnlock()
	return manager.snapshot
}

func (manager *Manager) refreshPeriodically() {
	defer manager.wg.Done()

	ticker := time.NewTicker(manager.config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			err := manager.Load(ctx)
			cancel()

			if err != nil {
				// Keep serving the previous panel.
				logging.LogError(manager.logger, "periodic refresh failed", err,
					slog.String("component", "worldbank"))
			}
		case <-manager.shutdownChan:
			return
		}
	}
}

// Shutdown stops the periodic refresh and closes the database.
func (manager *Manager) Shutdown() {
	manager.shutdownOnce.Do(func() {
		close(manager.shutdownChan)
	})
	manager.wg.Wait()
	logging.SafeCloseWithLogging(manager.FertDB, manager.logger, "fertdb_close")
}
