// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type Seed struct {
	WellbeingScore    int            `yaml:"wellbeing_score"`
	UpdatedMinutesAgo int            `yaml:"updated_minutes_ago"`
	Sources           string         `yaml:"sources"`
	Alert             Alert          `yaml:"alert"`
	Metrics           []Metric       `yaml:"metrics"`
	Layers            []Layer        `yaml:"layers"`
	DefaultLayers     []MetricType   `yaml:"default_layers"`
	CitizenTotal      int            `yaml:"citizen_report_total"`
	Reports           []ReportSeed   `yaml:"reports"`
	Missions          []Mission      `yaml:"missions"`
	UserStats         UserStats      `yaml:"user_stats"`
	Proposals         []ProposalSeed `yaml:"proposals"`
	Impact            Impact         `yaml:"impact"`
}

type Alert struct {
	Message  string `yaml:"message" json:"message"`
	Severity string `yaml:"severity" json:"severity"`
}

type Metric struct {
	Type        MetricType `yaml:"type"`
	Value       string     `yaml:"value"`
	Status      Status     `yaml:"status"`
	Description string     `yaml:"description"`
}

type Layer struct {
	Type      MetricType `yaml:"type"`
	Intensity string     `yaml:"intensity"`
}

type ReportSeed struct {
	ID         string        `yaml:"id"`
	Type       MetricType    `yaml:"type"`
	Location   string        `yaml:"location"`
	Summary    string        `yaml:"summary"`
	Author     string        `yaml:"author"`
	MinutesAgo int           `yaml:"minutes_ago"`
	Likes      int           `yaml:"likes"`
	Comments   []CommentSeed `yaml:"comments"`
}

type CommentSeed struct {
	ID         int    `yaml:"id"`
	Author     string `yaml:"author"`
	Text       string `yaml:"text"`
	MinutesAgo int    `yaml:"minutes_ago"`
}

type Mission struct {
	ID          string     `yaml:"id" json:"id"`
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description" json:"description"`
	Type        MetricType `yaml:"type" json:"type"`
	Points      int        `yaml:"points" json:"points"`
	Difficulty  string     `yaml:"difficulty" json:"difficulty"`
	Estimated   string     `yaml:"estimated" json:"estimated"`
	Active      int        `yaml:"active" json:"active"`
	Completed   int        `yaml:"completed" json:"completed"`
}

type UserStats struct {
	TotalPoints       int      `yaml:"total_points"`
	CompletedMissions int      `yaml:"completed_missions"`
	Rank              int      `yaml:"rank"`
	Badges            []string `yaml:"badges"`
}

type VoteTally struct {
	Up   int `yaml:"up" json:"up"`
	Down int `yaml:"down" json:"down"`
}

type ProposalSeed struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Type        MetricType     `yaml:"type"`
	Location    string         `yaml:"location"`
	Budget      string         `yaml:"budget"`
	Timeline    string         `yaml:"timeline"`
	Status      ProposalStatus `yaml:"status"`
	Votes       VoteTally      `yaml:"votes"`
	Comments    int            `yaml:"comments"`
	Progress    int            `yaml:"progress"`
	Impact      string         `yaml:"impact"`
}

type Impact struct {
	Stats        ImpactStats   `yaml:"stats" json:"stats"`
	Achievements []Achievement `yaml:"achievements" json:"achievements"`
	Stories      []Story       `yaml:"stories" json:"stories"`
}

type ImpactStats struct {
	TotalMissions     int    `yaml:"total_missions" json:"total_missions"`
	ZonesValidated    int    `yaml:"zones_validated" json:"zones_validated"`
	WasteReduced      string `yaml:"waste_reduced" json:"waste_reduced"`
	TemperatureCooled string `yaml:"temperature_cooled" json:"temperature_cooled"`
	TreesPlanted      int    `yaml:"trees_planted" json:"trees_planted"`
	FloodsPrevented   int    `yaml:"floods_prevented" json:"floods_prevented"`
	CO2Offset         string `yaml:"co2_offset" json:"co2_offset"`
	ImpactScore       int    `yaml:"impact_score" json:"impact_score"`
}

type Achievement struct {
	ID          int    `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon"`
	Unlocked    bool   `yaml:"unlocked" json:"unlocked"`
}

type Story struct {
	ID       int        `yaml:"id" json:"id"`
	Title    string     `yaml:"title" json:"title"`
	Location string     `yaml:"location" json:"location"`
	Before   string     `yaml:"before" json:"before"`
	After    string     `yaml:"after" json:"after"`
	Impact   string     `yaml:"impact" json:"impact"`
	DaysAgo  int        `yaml:"days_ago" json:"-"`
	Date     string     `yaml:"-" json:"date"`
	Type     MetricType `yaml:"type" json:"type"`
}

// Load parses the seed set compiled into the binary.
func Load() (*Seed, error) {
	return Parse(seedYAML)
}

// Parse decodes and validates a seed document. Unknown metric types,
// statuses and duplicate ids are rejected here so nothing downstream has
// to handle them.
func Parse(data []byte) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	return &s, nil
}

func (s *Seed) validate() error {
	seen := make(map[string]bool)
	for _, r := range s.Reports {
		if r.ID == "" {
			return fmt.Errorf("report with empty id")
		}
		if seen[r.ID] {
			return fmt.Errorf("duplicate report id %q", r.ID)
		}
		seen[r.ID] = true
		if r.Likes < 0 {
			return fmt.Errorf("report %q: negative like count", r.ID)
		}
		ids := make(map[int]bool)
		for _, c := range r.Comments {
			if c.ID <= 0 || ids[c.ID] {
				return fmt.Errorf("report %q: bad comment id %d", r.ID, c.ID)
			}
			ids[c.ID] = true
		}
	}

	missions := make(map[string]bool)
	for _, m := range s.Missions {
		if m.ID == "" || missions[m.ID] {
			return fmt.Errorf("bad mission id %q", m.ID)
		}
		missions[m.ID] = true
	}

	proposals := make(map[string]bool)
	for _, p := range s.Proposals {
		if p.ID == "" || proposals[p.ID] {
			return fmt.Errorf("bad proposal id %q", p.ID)
		}
		proposals[p.ID] = true
	}
	return nil
}

// Mission looks up a mission by id.
func (s *Seed) Mission(id string) (Mission, bool) {
	for _, m := range s.Missions {
		if m.ID == id {
			return m, true
		}
	}
	return Mission{}, false
}

// Stories returns the impact stories with their date labels filled in
// relative to now.
func (s *Seed) Stories(now time.Time) []Story {
	out := make([]Story, len(s.Impact.Stories))
	for i, st := range s.Impact.Stories {
		st.Date = RelativeLabel(now, time.Duration(st.DaysAgo)*24*time.Hour)
		out[i] = st
	}
	return out
}

// RelativeLabel renders an age such as "15 minutes ago".
func RelativeLabel(now time.Time, age time.Duration) string {
	if age < time.Minute {
		return "just now"
	}
	return humanize.RelTime(now.Add(-age), now, "ago", "from now")
}
