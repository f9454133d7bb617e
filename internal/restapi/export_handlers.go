package restapi

import (
	"bytes"
	"fmt"
	"net/http"

	"fertdash.agstats.org/internal/export"
	"fertdash.agstats.org/internal/models"
	"fertdash.agstats.org/internal/utils"
)

// exportPanelHandler streams the per-country panel for one year as an xlsx
// workbook.
func (api *RestAPI) exportPanelHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	queryParams := r.URL.Query()

	latest, err := api.DataManager.FertDB.LatestYear(ctx)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	year, fieldErrors := utils.ParseYearParam(queryParams, "year", latest, nil)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	rows, err := api.DataManager.FertDB.QueryPanel(ctx, year)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	// Render to a buffer first so encoding failures still get a clean
	// error response instead of a truncated download.
	var buf bytes.Buffer
	if err := export.WritePanelWorkbook(&buf, models.NewPanelList(rows, year), year); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"fertilizer_panel_%d.xlsx\"", year))
	_, _ = buf.WriteTo(w)
}

// exportTrendsHandler renders the requested country trend lines as a PNG
// chart.
func (api *RestAPI) exportTrendsHandler(w http.ResponseWriter, r *http.Request) {
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

	var buf bytes.Buffer
	series := models.NewTrendSeriesList(countries, points)
	if err := export.RenderTrendChart(&buf, series, yearStart, yearEnd); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", "attachment; filename=\"fertilizer_trends.png\"")
	_, _ = buf.WriteTo(w)
}

// exportChangeHandler renders the per-country change between two years as a
// PNG bar chart.
func (api *RestAPI) exportChangeHandler(w http.ResponseWriter, r *http.Request) {
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

	var buf bytes.Buffer
	entries := models.NewChangeList(rows)
	if err := export.RenderChangeChart(&buf, entries, yearStart, yearEnd); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", "attachment; filename=\"fertilizer_change.png\"")
	_, _ = buf.WriteTo(w)
}
