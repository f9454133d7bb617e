package utils

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// ExtractPathParam returns the named httprouter path parameter with any
// trailing ".json" removed, so /panel/2020 and /panel/2020.json resolve to
// the same year.
func ExtractPathParam(r *http.Request, name string) string {
	value := httprouter.ParamsFromContext(r.Context()).ByName(name)
	return strings.TrimSuffix(value, ".json")
}
