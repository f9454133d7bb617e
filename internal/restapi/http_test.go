package restapi

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"fertdash.agstats.org/internal/app"
	"fertdash.agstats.org/internal/appconf"
	"fertdash.agstats.org/internal/worldbank"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"
)

// fakeUpstream is a stand-in World Bank API. Flipping down makes every
// request fail so reload behavior can be exercised.
type fakeUpstream struct {
	server *httptest.Server
	down   atomic.Bool
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()

	upstream := &fakeUpstream{}
	mux := http.NewServeMux()
	mux.HandleFunc("/country/ALL/indicator/AG.CON.FERT.ZS", func(w http.ResponseWriter, r *http.Request) {
		if upstream.down.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `[
			{"page": 1, "pages": 1, "total": 8},
			[
				{"countryiso3code": "USA", "country": {"id": "US", "value": "United States"}, "date": "2015", "value": 100.0},
				{"countryiso3code": "USA", "country": {"id": "US", "value": "United States"}, "date": "2020", "value": 150.0},
				{"countryiso3code": "FRA", "country": {"id": "FR", "value": "France"}, "date": "2015", "value": 80.0},
				{"countryiso3code": "FRA", "country": {"id": "FR", "value": "France"}, "date": "2020", "value": null},
				{"countryiso3code": "DEU", "country": {"id": "DE", "value": "Germany"}, "date": "2015", "value": 150.0},
				{"countryiso3code": "DEU", "country": {"id": "DE", "value": "Germany"}, "date": "2020", "value": 150.0},
				{"countryiso3code": "BRA", "country": {"id": "BR", "value": "Brazil"}, "date": "2015", "value": 0.0},
				{"countryiso3code": "BRA", "country": {"id": "BR", "value": "Brazil"}, "date": "2020", "value": 200.0}
			]
		]`)
	})
	mux.HandleFunc("/country", func(w http.ResponseWriter, r *http.Request) {
		if upstream.down.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `[
			{"page": 1, "pages": 1, "total": 5},
			[
				{"id": "USA", "iso2Code": "US", "name": "United States", "region": {"id": "NAC", "value": "North America"}},
				{"id": "FRA", "iso2Code": "FR", "name": "France", "region": {"id": "ECS", "value": "Europe & Central Asia"}},
				{"id": "DEU", "iso2Code": "DE", "name": "Germany", "region": {"id": "ECS", "value": "Europe & Central Asia"}},
				{"id": "BRA", "iso2Code": "BR", "name": "Brazil", "region": {"id": "LCN", "value": "Latin America & Caribbean"}},
				{"id": "WLD", "iso2Code": "1W", "name": "World", "region": {"id": "NA", "value": "Aggregates"}}
			]
		]`)
	})

	upstream.server = httptest.NewServer(mux)
	t.Cleanup(upstream.server.Close)
	return upstream
}

func createTestApi(t *testing.T, upstream *fakeUpstream) *RestAPI {
	t.Helper()

	manager, err := worldbank.InitManager(worldbank.Config{
		BaseURL:        upstream.server.URL,
		DataPath:       ":memory:",
		RequestTimeout: 5 * time.Second,
		Env:            appconf.Test,
	}, slog.Default())
	require.NoError(t, err)
	t.Cleanup(manager.Shutdown)

	application := &app.Application{
		Config: appconf.Config{
			Env:     appconf.Test,
			ApiKeys: []string{"test"},
		},
		Logger:      slog.Default(),
		DataManager: manager,
	}

	return NewRestAPI(application)
}

// serveApiAndRetrieveEndpoint spins up the full route table and performs a
// single request against it.
func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, method, path string) (*http.Response, []byte) {
	t.Helper()

	router := httprouter.New()
	api.SetRoutes(router)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	req, err := http.NewRequest(method, server.URL+path, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, body
}

func getEndpoint(t *testing.T, api *RestAPI, path string) (*http.Response, []byte) {
	t.Helper()
	return serveApiAndRetrieveEndpoint(t, api, http.MethodGet, path)
}

// envelope mirrors models.ResponseModel with the data payload left raw so
// tests can decode it into the expected view type.
type envelope struct {
	Code        int             `json:"code"`
	CurrentTime int64           `json:"currentTime"`
	Data        json.RawMessage `json:"data"`
	Text        string          `json:"text"`
	Version     int             `json:"version"`
}

func decodeEnvelope(t *testing.T, body []byte) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func decodeList[T any](t *testing.T, body []byte) []T {
	t.Helper()
	env := decodeEnvelope(t, body)
	var data struct {
		List []T `json:"list"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.List
}

func decodeEntry[T any](t *testing.T, body []byte) T {
	t.Helper()
	env := decodeEnvelope(t, body)
	var data struct {
		Entry T `json:"entry"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.Entry
}
