package restapi

import (
	"net/http"

	"fertdash.agstats.org/internal/models"
	"fertdash.agstats.org/internal/utils"
)

const defaultMapSinceYear = 1990

// mapHandler returns every observation at or after a cutoff year, keyed by
// ISO3 code, as frames for the choropleth time slider.
func (api *RestAPI) mapHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	queryParams := r.URL.Query()

	since, fieldErrors := utils.ParseYearParam(queryParams, "since", defaultMapSinceYear, nil)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	rows, err := api.DataManager.FertDB.QueryMapData(ctx, since)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(models.NewMapObservationList(rows)))
}
