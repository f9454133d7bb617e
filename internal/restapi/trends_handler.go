package restapi

import (
	"net/http"

	"fertdash.agstats.org/internal/models"
	"fertdash.agstats.org/internal/utils"
)

// trendsHandler returns one time series per requested country over a year
// range. Countries are requested by display name, comma separated; a country
// without observations yields an empty series rather than an error.
func (api *RestAPI) trendsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	queryParams := r.URL.Query()

	countries, fieldErrors := utils.ParseCountryListParam(queryParams, "countries", nil)
	yearStart, fieldErrors := utils.ParseYearParam(queryParams, "yearStart", utils.MinYear, fieldErrors)
	yearEnd, fieldErrors := utils.ParseYearParam(queryParams, "yearEnd", utils.MaxYear, fieldErrors)

	if err := utils.ValidateYearRange(yearStart, yearEnd); err != nil {
		fieldErrors["yearEnd"] = append(fieldErrors["yearEnd"], err.Error())
	}

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	points, err := api.DataManager.FertDB.QueryTrends(ctx, countries, yearStart, yearEnd)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(models.NewTrendSeriesList(countries, points)))
}
