package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/api/fert/overview.json", validateAPIKey(api, api.overviewHandler))
	router.Handler(http.MethodGet, "/api/fert/trends.json", validateAPIKey(api, api.trendsHandler))
	router.Handler(http.MethodGet, "/api/fert/change.json", validateAPIKey(api, api.changeHandler))
	router.Handler(http.MethodGet, "/api/fert/panel/:year", validateAPIKey(api, api.panelHandler))
	router.Handler(http.MethodGet, "/api/fert/map.json", validateAPIKey(api, api.mapHandler))
	router.Handler(http.MethodGet, "/api/fert/countries.json", validateAPIKey(api, api.countriesHandler))
	router.Handler(http.MethodGet, "/api/fert/regions.json", validateAPIKey(api, api.regionsHandler))
	router.Handler(http.MethodGet, "/api/fert/summary.json", validateAPIKey(api, api.summaryHandler))
	router.Handler(http.MethodPost, "/api/fert/refresh.json", validateAPIKey(api, api.refreshHandler))
	router.Handler(http.MethodGet, "/api/fert/export/panel.xlsx", validateAPIKey(api, api.exportPanelHandler))
	router.Handler(http.MethodGet, "/api/fert/export/trends.png", validateAPIKey(api, api.exportTrendsHandler))
	router.Handler(http.MethodGet, "/api/fert/export/change.png", validateAPIKey(api, api.exportChangeHandler))
}

// Middleware wraps a handler with the API's standard middleware chain:
// request logging, gzip compression, and per-key rate limiting.
func (api *RestAPI) Middleware(next http.Handler) http.Handler {
	handler := api.rateLimiter(next)
	handler = CompressionMiddleware(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	return handler
}
