package handler

import (
	"net/http"

	"github.com/creamcroissant/trailerboard/internal/orderstatus"
)

// Statuses handles GET /statuses: the pipeline with labels and color tokens.
func Statuses(w http.ResponseWriter, _ *http.Request) {
	catalog := orderstatus.Catalog()
	respondList(w, catalog, len(catalog))
}
