package handler

import (
	"log/slog"
	"net/http"

	"github.com/creamcroissant/trailerboard/internal/service"
	"github.com/creamcroissant/trailerboard/internal/tablesort"
)

// PricingHandler serves the price list.
type PricingHandler struct {
	pricing service.PricingService
	logger  *slog.Logger
}

// NewPricingHandler 绑定价目 service。
func NewPricingHandler(pricing service.PricingService, logger *slog.Logger) *PricingHandler {
	return &PricingHandler{pricing: pricing, logger: logger}
}

// List handles GET /pricing?category=&sort=.
func (h *PricingHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.pricing.List(r.Context(), service.PriceListInput{
		Category: r.URL.Query().Get("category"),
		Sort:     tablesort.ParseState(r.URL.Query().Get("sort")),
	})
	if err != nil {
		respondServiceError(w, r, h.logger, "pricing.list", err)
		return
	}
	respondList(w, items, len(items))
}

// Upsert handles PUT /pricing.
func (h *PricingHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var input service.PriceItemInput
	if err := decodeJSON(r, &input); err != nil {
		respondServiceError(w, r, h.logger, "pricing.upsert", err)
		return
	}
	item, err := h.pricing.Upsert(r.Context(), input)
	if err != nil {
		respondServiceError(w, r, h.logger, "pricing.upsert", err)
		return
	}
	respondData(w, item)
}
