// 文件路径: internal/orderstatus/status.go
// 模块说明: 订单生命周期状态的枚举定义，以及展示用的颜色与标签查表。
package orderstatus

import "strings"

// Status is the canonical lifecycle status of a trailer order.
type Status string

const (
	StatusSchedule     Status = "schedule"
	StatusWelded       Status = "welded"
	StatusZink         Status = "zink"
	StatusReturned     Status = "returned"
	StatusAssembled    Status = "assembled"
	StatusTrailerBuild Status = "trailer-build"
	StatusSpecial      Status = "special"
	StatusReadyToShip  Status = "ready-to-ship"
	StatusShipped      Status = "shipped"
)

// pipeline 按生产流程排序，而不是按识别优先级排序。
var pipeline = []Status{
	StatusSchedule,
	StatusWelded,
	StatusZink,
	StatusReturned,
	StatusAssembled,
	StatusTrailerBuild,
	StatusSpecial,
	StatusReadyToShip,
	StatusShipped,
}

// Pipeline returns every status in pipeline progression order.
func Pipeline() []Status {
	return append([]Status(nil), pipeline...)
}

// Rank is the position of s in the pipeline. Unknown values rank as schedule.
func (s Status) Rank() int {
	for i, candidate := range pipeline {
		if candidate == s {
			return i
		}
	}
	return 0
}

// Valid reports whether s is one of the nine known statuses.
func (s Status) Valid() bool {
	_, ok := presentation[s]
	return ok
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus accepts "ready-to-ship", "READY_TO_SHIP" and "ready to ship" alike.
func ParseStatus(raw string) (Status, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.NewReplacer("_", "-", " ", "-").Replace(normalized)
	status := Status(normalized)
	if !status.Valid() {
		return StatusSchedule, false
	}
	return status, true
}

type display struct {
	label string
	color string
}

var presentation = map[Status]display{
	StatusSchedule:     {label: "SCHEDULE", color: "slate"},
	StatusWelded:       {label: "WELDED", color: "orange"},
	StatusZink:         {label: "ZINK", color: "cyan"},
	StatusReturned:     {label: "RETURNED", color: "amber"},
	StatusAssembled:    {label: "ASSEMBLED", color: "indigo"},
	StatusTrailerBuild: {label: "TRAILER BUILD", color: "violet"},
	StatusSpecial:      {label: "SPECIAL", color: "red"},
	StatusReadyToShip:  {label: "READY TO SHIP", color: "emerald"},
	StatusShipped:      {label: "SHIPPED", color: "green"},
}

func lookup(s Status) display {
	if d, ok := presentation[s]; ok {
		return d
	}
	return presentation[StatusSchedule]
}

// StatusColor returns the color token for s, falling back to the schedule entry.
func StatusColor(s Status) string {
	return lookup(s).color
}

// StatusLabel returns the uppercase display label for s, falling back to the schedule entry.
func StatusLabel(s Status) string {
	return lookup(s).label
}

// CatalogEntry describes one status for clients rendering legends and filters.
type CatalogEntry struct {
	Status Status `json:"status"`
	Label  string `json:"label"`
	Color  string `json:"color"`
	Rank   int    `json:"rank"`
}

// Catalog lists every status with its presentation tokens in pipeline order.
func Catalog() []CatalogEntry {
	entries := make([]CatalogEntry, 0, len(pipeline))
	for i, s := range pipeline {
		entries = append(entries, CatalogEntry{
			Status: s,
			Label:  StatusLabel(s),
			Color:  StatusColor(s),
			Rank:   i,
		})
	}
	return entries
}
