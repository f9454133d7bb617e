package webui

import (
	"embed"
	"html/template"
	"net/http"
)

//go:embed dashboard.html
var dashboardTemplateFS embed.FS

type dashboardData struct {
	ApiKey string
}

// indexHandler serves the dashboard page. The page's scripts call the JSON
// API with the first configured key; with no keys configured the API rejects
// everything, so the page states that instead of rendering dead controls.
func (webUI *WebUI) indexHandler(w http.ResponseWriter, r *http.Request) {
	if len(webUI.Config.ApiKeys) == 0 {
		http.Error(w, "no API keys configured", http.StatusServiceUnavailable)
		return
	}

	tmpl, err := template.ParseFS(dashboardTemplateFS, "dashboard.html")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	err = tmpl.Execute(w, dashboardData{ApiKey: webUI.Config.ApiKeys[0]})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
