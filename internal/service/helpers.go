// 文件路径: internal/service/helpers.go
package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/creamcroissant/trailerboard/internal/repository"
)

// summaryCacheKey 是状态统计在缓存里的键，写操作后需要失效。
const summaryCacheKey = "board:summary"

// sanitizeNotes strips markup from free-text notes down to the UGC subset.
func sanitizeNotes(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	return notesPolicy().Sanitize(trimmed)
}

var notesPolicy = sync.OnceValue(func() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AllowURLSchemes("http", "https", "mailto")
	policy.AddSpaceWhenStrippingTag(true)
	return policy
})

// parseDateInput parses an optional YYYY-MM-DD field. Blank means absent.
func parseDateInput(field, raw string) (*time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := time.Parse(repository.DateLayout, trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD / %s 日期格式应为 YYYY-MM-DD", ErrInvalidInput, field, field)
	}
	return &parsed, nil
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(repository.DateLayout)
}

func optionalText(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func textValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
