package restapi

import (
	"net/http"
	"time"

	"fertdash.agstats.org/internal/models"
)

// countriesHandler lists the display names of every country with at least one
// observation, for populating selection controls.
func (api *RestAPI) countriesHandler(w http.ResponseWriter, r *http.Request) {
	names, err := api.DataManager.FertDB.QueryCountryNames(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(names))
}

// regionsHandler lists the distinct regions of tracked countries.
func (api *RestAPI) regionsHandler(w http.ResponseWriter, r *http.Request) {
	regions, err := api.DataManager.FertDB.QueryRegions(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(regions))
}

// summaryHandler returns dataset-wide statistics plus the time of the last
// successful load.
func (api *RestAPI) summaryHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := api.DataManager.FertDB.QuerySummary(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	lastLoaded := ""
	if t := api.DataManager.LastLoaded(); !t.IsZero() {
		lastLoaded = t.UTC().Format(time.RFC3339)
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.NewSummaryModel(summary, lastLoaded)))
}
