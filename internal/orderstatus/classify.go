package orderstatus

import (
	"strings"
	"time"
)

// Record carries the raw order fields the classifier reads. Nil means absent.
type Record struct {
	ShipmentID     *string
	SequenceMarker *string
	FinalizedDate  *time.Time
	BuildDate      *time.Time
}

// Rule pairs a predicate with the status it assigns.
type Rule struct {
	Name   string
	Status Status
	Match  func(Record) bool
}

// rules is evaluated top to bottom and the first match wins. The last entry
// always matches, so Classify is total.
var rules = []Rule{
	{Name: "shipment", Status: StatusShipped, Match: hasShipment},
	{Name: "marker.weld", Status: StatusWelded, Match: markerContains("weld")},
	{Name: "marker.zink", Status: StatusZink, Match: markerContains("zink", "zinc")},
	{Name: "marker.return", Status: StatusReturned, Match: markerContains("return")},
	{Name: "marker.assembl", Status: StatusAssembled, Match: markerContains("assembl")},
	{Name: "marker.trailer", Status: StatusTrailerBuild, Match: markerContains("wire", "floor", "mount", "trailer")},
	{Name: "marker.special", Status: StatusSpecial, Match: markerContains("special", "need fix", "fix")},
	{Name: "marker.ready", Status: StatusReadyToShip, Match: markerContains("ready", "ship")},
	{Name: "finalized", Status: StatusReadyToShip, Match: func(r Record) bool { return r.FinalizedDate != nil }},
	{Name: "build", Status: StatusTrailerBuild, Match: func(r Record) bool { return r.BuildDate != nil }},
	{Name: "default", Status: StatusSchedule, Match: func(Record) bool { return true }},
}

// Rules returns a copy of the ordered rule table.
func Rules() []Rule {
	return append([]Rule(nil), rules...)
}

// Classify derives the status of an order. It never fails: missing fields
// fall through to the next rule and ultimately to schedule.
func Classify(r Record) Status {
	return Explain(r).Status
}

// Explain returns the rule that decided the status of r.
func Explain(r Record) Rule {
	for _, rule := range rules {
		if rule.Match(r) {
			return rule
		}
	}
	return rules[len(rules)-1]
}

func hasShipment(r Record) bool {
	return r.ShipmentID != nil && strings.TrimSpace(*r.ShipmentID) != ""
}

func normalizeMarker(marker *string) string {
	if marker == nil {
		return ""
	}
	return strings.ToLower(*marker)
}

func markerContains(needles ...string) func(Record) bool {
	return func(r Record) bool {
		return containsAny(normalizeMarker(r.SequenceMarker), needles)
	}
}

func containsAny(haystack string, needles []string) bool {
	if haystack == "" {
		return false
	}
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

// subStage 与 trailer-build 规则共用同一套词汇；mount 优先于 floor，floor 优先于 wire。
var subStages = []struct {
	needle string
	name   string
	color  string
}{
	{needle: "mount", name: "mounting", color: "fuchsia"},
	{needle: "floor", name: "flooring", color: "teal"},
	{needle: "wire", name: "wiring", color: "sky"},
}

// SubStage names the trailer-build stage hinted by a marker, or "" when none applies.
func SubStage(marker string) string {
	lowered := strings.ToLower(marker)
	for _, stage := range subStages {
		if strings.Contains(lowered, stage.needle) {
			return stage.name
		}
	}
	return ""
}

// SubStatusColor picks the trailer-build sub-stage color. Text without a
// sub-stage keyword gets the assembled-stage color.
func SubStatusColor(text string) string {
	lowered := strings.ToLower(text)
	for _, stage := range subStages {
		if strings.Contains(lowered, stage.needle) {
			return stage.color
		}
	}
	return StatusColor(StatusAssembled)
}

// Annotation is the presentation-ready classification of one order.
type Annotation struct {
	Status        Status `json:"status"`
	Label         string `json:"label"`
	Color         string `json:"color"`
	SubStage      string `json:"sub_stage,omitempty"`
	SubStageColor string `json:"sub_stage_color,omitempty"`
	Rule          string `json:"rule"`
}

// Annotate classifies r and resolves its display tokens.
func Annotate(r Record) Annotation {
	rule := Explain(r)
	annotation := Annotation{
		Status: rule.Status,
		Label:  StatusLabel(rule.Status),
		Color:  StatusColor(rule.Status),
		Rule:   rule.Name,
	}
	if rule.Status == StatusTrailerBuild {
		marker := normalizeMarker(r.SequenceMarker)
		annotation.SubStage = SubStage(marker)
		annotation.SubStageColor = SubStatusColor(marker)
	}
	return annotation
}
