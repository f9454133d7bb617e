package restapi

import (
	"net/http"

	"fertdash.agstats.org/internal/models"
	"fertdash.agstats.org/internal/utils"
)

const (
	defaultOverviewLimit = 15
	maxOverviewLimit     = 100
)

// overviewHandler returns the top fertilizer consumers for a single year,
// ranked by consumption. The year defaults to the latest year with data,
// and an optional region parameter restricts the ranking.
func (api *RestAPI) overviewHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	queryParams := r.URL.Query()

	latest, err := api.DataManager.FertDB.LatestYear(ctx)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	year, fieldErrors := utils.ParseYearParam(queryParams, "year", latest, nil)
	limit, fieldErrors := utils.ParseIntParam(queryParams, "limit", defaultOverviewLimit, fieldErrors)
	if limit < 1 || limit > maxOverviewLimit {
		fieldErrors["limit"] = append(fieldErrors["limit"], "limit must be between 1 and 100")
	}

	region := queryParams.Get("region")
	if region != "" {
		if err := utils.ValidateCountryName(region); err != nil {
			fieldErrors["region"] = append(fieldErrors["region"], err.Error())
		}
	}

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	consumers, err := api.DataManager.FertDB.QueryTopConsumers(ctx, year, region, limit)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(models.NewRankingList(consumers)))
}
