// 文件路径: internal/api/handler/response.go
// 模块说明: 统一的 JSON 响应与错误映射。
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/creamcroissant/trailerboard/internal/repository"
	"github.com/creamcroissant/trailerboard/internal/service"
)

// Helper to respond with JSON
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("failed to encode response JSON", "error", err)
	}
}

func respondData(w http.ResponseWriter, data any) {
	respondJSON(w, http.StatusOK, map[string]any{"data": data})
}

func respondList(w http.ResponseWriter, data any, total int) {
	respondJSON(w, http.StatusOK, map[string]any{"data": data, "total": total})
}

func respondError(w http.ResponseWriter, status int, action string, err error) {
	respondJSON(w, status, map[string]any{
		"error":  err.Error(),
		"action": action,
	})
}

// respondServiceError maps service sentinels onto HTTP status codes. Anything
// unrecognised is logged and hidden behind a generic 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, action string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, action, err)
	case errors.Is(err, service.ErrNotFound):
		respondError(w, http.StatusNotFound, action, err)
	case errors.Is(err, service.ErrConflict):
		respondError(w, http.StatusConflict, action, err)
	default:
		if logger != nil {
			logger.ErrorContext(r.Context(), "request failed", "action", action, "error", err)
		}
		respondError(w, http.StatusInternalServerError, action, errors.New("internal server error / 服务器内部错误"))
	}
}

func decodeJSON(r *http.Request, dest any) error {
	if r.Body == nil {
		return fmt.Errorf("%w: empty body / 请求体为空", service.ErrInvalidInput)
	}
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: malformed JSON / JSON 格式错误", service.ErrInvalidInput)
	}
	return nil
}

// dateRange reads the optional from/to query parameters.
func dateRange(r *http.Request) (*time.Time, *time.Time, error) {
	from, err := queryDate(r, "from")
	if err != nil {
		return nil, nil, err
	}
	to, err := queryDate(r, "to")
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func queryDate(r *http.Request, key string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(repository.DateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD / 日期格式应为 YYYY-MM-DD", service.ErrInvalidInput, key)
	}
	return &parsed, nil
}

func formatETag(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return "\"" + trimmed + "\""
}
