package restapi

import (
	"net/http"

	"fertdash.agstats.org/internal/models"
	"fertdash.agstats.org/internal/utils"
)

// changeHandler returns per-country absolute and percent change in
// consumption between two years. Only countries observed in both years
// appear; a zero starting value is excluded because percent change is
// undefined there.
func (api *RestAPI) changeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	queryParams := r.URL.Query()

	latest, err := api.DataManager.FertDB.LatestYear(ctx)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	yearStart, fieldErrors := utils.ParseYearParam(queryParams, "yearStart", 2000, nil)
	yearEnd, fieldErrors := utils.ParseYearParam(queryParams, "yearEnd", latest, fieldErrors)

	if err := utils.ValidateYearRange(yearStart, yearEnd); err != nil {
		fieldErrors["yearEnd"] = append(fieldErrors["yearEnd"], err.Error())
	}

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	rows, err := api.DataManager.FertDB.QueryChange(ctx, yearStart, yearEnd)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(models.NewChangeList(rows)))
}
