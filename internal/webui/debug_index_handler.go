package webui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"
)

//go:embed debug_index.html
var debugTemplateFS embed.FS

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	content := spew.Sdump(data)
	w.Header().Set("Content-Type", "text/html")
	tmpl, err := template.ParseFS(debugTemplateFS, "debug_index.html")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dataStruct := debugData{
		Title: title,
		Pre:   content,
	}

	err = tmpl.Execute(w, dataStruct)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// debugIndexHandler dumps the raw upstream records as fetched, before
// normalization, so feed oddities can be inspected without re-querying the
// World Bank.
func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	snapshot := webUI.DataManager.Snapshot()

	switch dataType {
	case "observations":
		data = snapshot.Observations
		title = "World Bank Feed - Raw Observations"
	case "countries":
		data = snapshot.Countries
		title = "World Bank Feed - Raw Countries"
	case "config":
		data = webUI.WBConfig
		title = "World Bank Feed - Fetch Configuration"
	default:
		data = map[string]string{
			"error": "Please use one of the following: observations, countries, config.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}
