package restapi

import (
	"errors"
	"net/http"
	"time"

	"fertdash.agstats.org/internal/models"
	"fertdash.agstats.org/internal/worldbank"
)

// refreshHandler re-fetches the upstream feed and rebuilds the database. A
// failed fetch leaves the previously loaded data in place and reports 503.
func (api *RestAPI) refreshHandler(w http.ResponseWriter, r *http.Request) {
	err := api.DataManager.Load(r.Context())
	if err != nil {
		if errors.Is(err, worldbank.ErrDataUnavailable) {
			api.dataUnavailableResponse(w, r, err)
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	summary, err := api.DataManager.FertDB.QuerySummary(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	lastLoaded := api.DataManager.LastLoaded().UTC().Format(time.RFC3339)
	api.sendResponse(w, r, models.NewEntryResponse(models.NewSummaryModel(summary, lastLoaded)))
}
