package webui

import (
	"net/http"

	"fertdash.agstats.org/internal/app"
	"github.com/julienschmidt/httprouter"
)

type WebUI struct {
	*app.Application
}

func NewWebUI(app *app.Application) *WebUI {
	return &WebUI{Application: app}
}

func (webUI *WebUI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/", http.HandlerFunc(webUI.indexHandler))
	router.Handler(http.MethodGet, "/debug", http.HandlerFunc(webUI.debugIndexHandler))
}
