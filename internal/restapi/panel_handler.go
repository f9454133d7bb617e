package restapi

import (
	"net/http"
	"strconv"

	"fertdash.agstats.org/internal/models"
	"fertdash.agstats.org/internal/utils"
)

// panelHandler returns every tracked country for one year, including
// countries with no observation for that year.
func (api *RestAPI) panelHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rawYear := utils.ExtractPathParam(r, "year")
	year, err := strconv.ParseInt(rawYear, 10, 64)
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"year": {"Invalid field value for field \"year\"."},
		})
		return
	}

	if err := utils.ValidateYear(year); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"year": {err.Error()},
		})
		return
	}

	rows, err := api.DataManager.FertDB.QueryPanel(ctx, year)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(models.NewPanelList(rows, year)))
}
