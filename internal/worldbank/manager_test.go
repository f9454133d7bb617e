package worldbank

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fertdash.agstats.org/internal/appconf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, baseURL string) *Manager {
	t.Helper()

	manager, err := InitManager(Config{
		BaseURL:        baseURL,
		DataPath:       ":memory:",
		PerPage:        2,
		RequestTimeout: 5 * time.Second,
		Env:            appconf.Test,
	}, slog.Default())
	require.NoError(t, err)
	t.Cleanup(manager.Shutdown)

	return manager
}

func TestInitManagerLoadsPanel(t *testing.T) {
	server := newFakeWorldBank(t)
	manager := newTestManager(t, server.URL)
	ctx := context.Background()

	summary, err := manager.FertDB.QuerySummary(ctx)
	require.NoError(t, err)

	// USA/2019 deduped to one row (130.0), FRA/2019 present, FRA/2020 NULL.
	assert.EqualValues(t, 2, summary.Observations)
	assert.EqualValues(t, 2, summary.Countries)

	countries, err := manager.FertDB.QueryCountries(ctx)
	require.NoError(t, err)
	require.Len(t, countries, 2) // World aggregate excluded

	assert.False(t, manager.LastLoaded().IsZero())
}

func TestManagerSnapshotRetainsRawRecords(t *testing.T) {
	server := newFakeWorldBank(t)
	manager := newTestManager(t, server.URL)

	snapshot := manager.Snapshot()
	assert.Len(t, snapshot.Observations, 4)
	assert.Len(t, snapshot.Countries, 3)
}

func TestManagerReloadKeepsPanelOnFailure(t *testing.T) {
	server := newFakeWorldBank(t)
	manager := newTestManager(t, server.URL)
	ctx := context.Background()

	// Point the manager at a dead upstream and reload.
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer dead.Close()
	manager.client = NewClient(Config{BaseURL: dead.URL, RequestTimeout: time.Second})

	err := manager.Load(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDataUnavailable))

	// The previously loaded panel still serves.
	summary, err := manager.FertDB.QuerySummary(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, summary.Observations)
}

func TestInitManagerFailsWhenSourceUnavailable(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer dead.Close()

	_, err := InitManager(Config{
		BaseURL:        dead.URL,
		DataPath:       ":memory:",
		RequestTimeout: time.Second,
		Env:            appconf.Test,
	}, slog.Default())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDataUnavailable))
}
