// 文件路径: internal/api/handler/schedule.go
package handler

import (
	"log/slog"
	"net/http"

	"github.com/creamcroissant/trailerboard/internal/service"
)

// ScheduleHandler serves build and shipping schedules.
type ScheduleHandler struct {
	schedule service.ScheduleService
	logger   *slog.Logger
}

// NewScheduleHandler 绑定排期 service。
func NewScheduleHandler(schedule service.ScheduleService, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule, logger: logger}
}

// Build handles GET /schedule/build?from=&to=.
func (h *ScheduleHandler) Build(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		respondServiceError(w, r, h.logger, "schedule.build", err)
		return
	}
	result, err := h.schedule.BuildSchedule(r.Context(), from, to)
	if err != nil {
		respondServiceError(w, r, h.logger, "schedule.build", err)
		return
	}
	respondData(w, result)
}

// Shipping handles GET /schedule/shipping?from=&to=.
func (h *ScheduleHandler) Shipping(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		respondServiceError(w, r, h.logger, "schedule.shipping", err)
		return
	}
	result, err := h.schedule.ShippingSchedule(r.Context(), from, to)
	if err != nil {
		respondServiceError(w, r, h.logger, "schedule.shipping", err)
		return
	}
	respondData(w, result)
}

// CreateShipment handles POST /shipments.
func (h *ScheduleHandler) CreateShipment(w http.ResponseWriter, r *http.Request) {
	var input service.ShipmentInput
	if err := decodeJSON(r, &input); err != nil {
		respondServiceError(w, r, h.logger, "shipments.create", err)
		return
	}
	shipment, err := h.schedule.CreateShipment(r.Context(), input)
	if err != nil {
		respondServiceError(w, r, h.logger, "shipments.create", err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"data": shipment})
}
