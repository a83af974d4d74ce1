// 文件路径: internal/api/handler/system.go
package handler

import (
	"log/slog"
	"net/http"

	"github.com/creamcroissant/trailerboard/internal/service"
)

// SystemHandler 提供系统状态接口。
type SystemHandler struct {
	system service.SystemService
	logger *slog.Logger
}

// NewSystemHandler 绑定 service 实例。
func NewSystemHandler(system service.SystemService, logger *slog.Logger) *SystemHandler {
	return &SystemHandler{system: system, logger: logger}
}

// Status handles GET /system/status.
func (h *SystemHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.system.Status(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, "system.status", err)
		return
	}
	respondData(w, status)
}
