// 文件路径: internal/api/handler/orders.go
// 模块说明: 订单看板接口：列表、统计、排序切换、录入与编辑。
package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/creamcroissant/trailerboard/internal/service"
	"github.com/creamcroissant/trailerboard/internal/tablesort"
)

// OrderHandler serves the order board endpoints.
type OrderHandler struct {
	board   service.OrderBoardService
	logger  *slog.Logger
	columns map[string]struct{}
}

// NewOrderHandler 绑定看板 service。
func NewOrderHandler(board service.OrderBoardService, logger *slog.Logger) *OrderHandler {
	columns := make(map[string]struct{})
	for _, c := range service.BoardColumns() {
		columns[c] = struct{}{}
	}
	return &OrderHandler{board: board, logger: logger, columns: columns}
}

// List handles GET /orders?status=&from=&to=&sort=column:dir.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	const action = "orders.list"
	from, to, err := dateRange(r)
	if err != nil {
		respondServiceError(w, r, h.logger, action, err)
		return
	}
	state := tablesort.ParseState(r.URL.Query().Get("sort"))
	if active, ok := state.Active(); ok {
		if _, known := h.columns[active.Column]; !known {
			respondServiceError(w, r, h.logger, action, fmt.Errorf("%w: unknown sort column %q / 不支持的排序列", service.ErrInvalidInput, active.Column))
			return
		}
	}

	board, err := h.board.List(r.Context(), service.OrderListInput{
		Status: r.URL.Query().Get("status"),
		From:   from,
		To:     to,
		Sort:   state,
	})
	if err != nil {
		respondServiceError(w, r, h.logger, action, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"data":         board.Orders,
		"total":        board.Total,
		"sort":         board.Sort,
		"status":       board.Status,
		"degraded":     board.Degraded,
		"generated_at": board.GeneratedAt,
	})
}

// Summary handles GET /orders/summary and honours If-None-Match.
func (h *OrderHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.board.Summary(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, "orders.summary", err)
		return
	}
	etag := formatETag(strconv.FormatInt(summary.GeneratedAt.UnixNano(), 36))
	if etag != "" {
		if match := r.Header.Get("If-None-Match"); match == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
	}
	respondData(w, summary)
}

type sortToggleRequest struct {
	Column string `json:"column"`
	Sort   string `json:"sort"`
}

// ToggleSort handles POST /orders/sort for clients that keep no sort state of their own.
func (h *OrderHandler) ToggleSort(w http.ResponseWriter, r *http.Request) {
	const action = "orders.sort"
	var req sortToggleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, h.logger, action, err)
		return
	}
	state, err := h.board.ToggleSort(req.Column, req.Sort)
	if err != nil {
		respondServiceError(w, r, h.logger, action, err)
		return
	}
	criterion, _ := state.Active()
	respondData(w, map[string]any{
		"state":     state,
		"sort":      state.String(),
		"column":    strings.TrimSpace(req.Column),
		"direction": tablesort.DirectionOf(strings.TrimSpace(req.Column), state),
		"glyph":     criterion.Direction.Glyph(),
	})
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r, "orders.get")
	if !ok {
		return
	}
	view, err := h.board.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.logger, "orders.get", err)
		return
	}
	respondData(w, view)
}

// Create handles POST /orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	const action = "orders.create"
	var input service.OrderSaveInput
	if err := decodeJSON(r, &input); err != nil {
		respondServiceError(w, r, h.logger, action, err)
		return
	}
	view, err := h.board.Create(r.Context(), input)
	if err != nil {
		respondServiceError(w, r, h.logger, action, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"data": view})
}

// Update handles PUT /orders/{id}.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	const action = "orders.update"
	id, ok := h.orderID(w, r, action)
	if !ok {
		return
	}
	var input service.OrderSaveInput
	if err := decodeJSON(r, &input); err != nil {
		respondServiceError(w, r, h.logger, action, err)
		return
	}
	view, err := h.board.Update(r.Context(), id, input)
	if err != nil {
		respondServiceError(w, r, h.logger, action, err)
		return
	}
	respondData(w, view)
}

func (h *OrderHandler) orderID(w http.ResponseWriter, r *http.Request, action string) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, action, fmt.Errorf("invalid order id %q / 订单 ID 无效", idStr))
		return 0, false
	}
	return id, true
}
