// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownMetricType = errors.New("unknown metric type")
	ErrUnknownStatus     = errors.New("unknown metric status")
)

// MetricType is one of the five environmental layers tracked by the dashboard.
type MetricType string

const (
	MetricHeat  MetricType = "heat"
	MetricAir   MetricType = "air"
	MetricFlood MetricType = "flood"
	MetricGreen MetricType = "green"
	MetricWaste MetricType = "waste"
)

// MetricInfo is the presentation data attached to a metric type.
type MetricInfo struct {
	Title string `json:"title"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Card  string `json:"card_class"`
}

// metricTypes fixes the display order
var metricTypes = []MetricType{MetricHeat, MetricAir, MetricFlood, MetricGreen, MetricWaste}

var metricTable = map[MetricType]MetricInfo{
	MetricHeat:  {Title: "Heat Index", Icon: "thermometer", Color: "text-neon-heat", Card: "metric-card-heat"},
	MetricAir:   {Title: "Air Quality", Icon: "wind", Color: "text-neon-air", Card: "metric-card-air"},
	MetricFlood: {Title: "Flood Risk", Icon: "droplet", Color: "text-neon-flood", Card: "metric-card-flood"},
	MetricGreen: {Title: "Green Cover", Icon: "tree-pine", Color: "text-neon-green", Card: "metric-card-green"},
	MetricWaste: {Title: "Resources", Icon: "recycle", Color: "text-neon-waste", Card: "metric-card-waste"},
}

// MetricTypes returns every metric type in display order.
func MetricTypes() []MetricType {
	out := make([]MetricType, len(metricTypes))
	copy(out, metricTypes)
	return out
}

// ParseMetricType returns the metric type named by s.
func ParseMetricType(s string) (MetricType, error) {
	t := MetricType(s)
	if _, ok := metricTable[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMetricType, s)
	}
	return t, nil
}

// Info returns the lookup-table entry for t. Callers only hold parsed types,
// so a missing entry means a zero MetricType.
func (t MetricType) Info() MetricInfo {
	return metricTable[t]
}

func (t *MetricType) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseMetricType(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*t = parsed
	return nil
}

// Status is the health grade shown on a metric card.
type Status string

const (
	StatusGood     Status = "good"
	StatusFair     Status = "fair"
	StatusPoor     Status = "poor"
	StatusCritical Status = "critical"
)

var statusColors = map[Status]string{
	StatusGood:     "text-score-excellent",
	StatusFair:     "text-score-fair",
	StatusPoor:     "text-score-poor",
	StatusCritical: "text-score-critical",
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := statusColors[st]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return st, nil
}

func (s Status) Color() string {
	return statusColors[s]
}

func (s *Status) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*s = parsed
	return nil
}

// Wellbeing thresholds, checked top-down.
var wellbeingBands = []struct {
	min   int
	label string
	color string
}{
	{80, "Excellent", "text-score-excellent"},
	{60, "Good", "text-score-good"},
	{40, "Fair", "text-score-fair"},
	{20, "Needs Attention", "text-score-poor"},
	{0, "Critical", "text-score-critical"},
}

// ClampScore bounds a wellbeing score to 0..100.
func ClampScore(score int) int {
	return max(0, min(100, score))
}

// WellbeingLabel returns the label and colour token for a clamped score.
func WellbeingLabel(score int) (label, color string) {
	score = ClampScore(score)
	for _, b := range wellbeingBands {
		if score >= b.min {
			return b.label, b.color
		}
	}
	last := wellbeingBands[len(wellbeingBands)-1]
	return last.label, last.color
}

// ProposalStatus is the stage of a city-improvement proposal.
type ProposalStatus string

const (
	ProposalVoting   ProposalStatus = "voting"
	ProposalApproved ProposalStatus = "approved"
	ProposalPlanning ProposalStatus = "planning"
	ProposalReview   ProposalStatus = "review"
)

var proposalColors = map[ProposalStatus]string{
	ProposalApproved: "text-neon-green",
	ProposalVoting:   "text-neon-primary",
	ProposalPlanning: "text-neon-citizen",
	ProposalReview:   "text-score-fair",
}

func (s ProposalStatus) Color() string {
	if c, ok := proposalColors[s]; ok {
		return c
	}
	return "text-muted-foreground"
}

func (s *ProposalStatus) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	st := ProposalStatus(raw)
	if _, ok := proposalColors[st]; !ok {
		return fmt.Errorf("line %d: unknown proposal status %q", value.Line, raw)
	}
	*s = st
	return nil
}
