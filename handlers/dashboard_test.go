// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/streetpulse/capture"
	"github.com/danielhkuo/streetpulse/catalog"
	"github.com/danielhkuo/streetpulse/engagement"
	"github.com/danielhkuo/streetpulse/models"
	"github.com/danielhkuo/streetpulse/testutil"
	"github.com/danielhkuo/streetpulse/workspace"
)

func TestPulse(t *testing.T) {
	env := newTestEnv(t, &capture.SimulatedCamera{})
	token := env.login(t, "Maya")

	w := env.do("GET", "/pulse", nil, token)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.PulseResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.WellbeingScore != 73 || resp.WellbeingLabel != "Good" {
		t.Errorf("Expected 73/Good, got %d/%s", resp.WellbeingScore, resp.WellbeingLabel)
	}
	if resp.UpdatedLabel != "2 minutes ago" {
		t.Errorf("Expected updated label '2 minutes ago', got %q", resp.UpdatedLabel)
	}
	if len(resp.Metrics) != 5 {
		t.Fatalf("Expected 5 metrics, got %d", len(resp.Metrics))
	}
	heat := resp.Metrics[0]
	if heat.Type != catalog.MetricHeat || heat.Title != "Heat Index" || heat.StatusColor != heat.Status.Color() {
		t.Errorf("Unexpected heat metric %+v", heat)
	}
}

func TestOrbitToggles(t *testing.T) {
	env := newTestEnv(t, &capture.SimulatedCamera{})
	token := env.login(t, "Maya")

	activeLayers := func(resp models.OrbitResponse) []catalog.MetricType {
		var out []catalog.MetricType
		for _, l := range resp.Layers {
			if l.Active {
				out = append(out, l.Type)
			}
		}
		return out
	}

	w := env.do("GET", "/orbit", nil, token)
	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.OrbitResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Mode != workspace.ModeSatellite {
		t.Errorf("Expected satellite mode, got %s", resp.Mode)
	}
	if diff := cmp.Diff([]catalog.MetricType{catalog.MetricHeat, catalog.MetricGreen}, activeLayers(resp)); diff != "" {
		t.Errorf("default layers mismatch (-want +got):\n%s", diff)
	}
	if resp.Citizens.Total != 47 || len(resp.Citizens.Recent) != 3 {
		t.Errorf("Unexpected citizen summary total=%d recent=%d", resp.Citizens.Total, len(resp.Citizens.Recent))
	}

	w = env.do("POST", "/orbit/layers/flood", nil, token)
	testutil.AssertStatus(t, w, http.StatusOK)
	resp = models.OrbitResponse{}
	testutil.AssertJSON(t, w, &resp)
	if diff := cmp.Diff([]catalog.MetricType{catalog.MetricHeat, catalog.MetricFlood, catalog.MetricGreen}, activeLayers(resp)); diff != "" {
		t.Errorf("layers after toggle mismatch (-want +got):\n%s", diff)
	}

	w = env.do("POST", "/orbit/layers/noise", nil, token)
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	w = env.do("POST", "/orbit/mode", nil, token)
	resp = models.OrbitResponse{}
	testutil.AssertJSON(t, w, &resp)
	if resp.Mode != workspace.ModeCitizen {
		t.Errorf("Expected citizen mode, got %s", resp.Mode)
	}
}

func TestProposalVoting(t *testing.T) {
	env := newTestEnv(t, &capture.SimulatedCamera{})
	token := env.login(t, "Maya")

	vote := func(id, v string) (engagement.Proposal, int) {
		w := env.do("POST", "/proposals/"+id+"/vote", models.VoteRequest{Vote: v}, token)
		var p engagement.Proposal
		if w.Code == http.StatusOK {
			testutil.AssertJSON(t, w, &p)
		}
		return p, w.Code
	}

	p, code := vote("riverside-park", "up")
	if code != http.StatusOK || p.Votes.Up != 235 || p.ViewerVote != engagement.VoteUp {
		t.Errorf("up vote: code=%d proposal=%+v", code, p)
	}

	p, _ = vote("riverside-park", "down")
	if p.Votes.Up != 234 || p.Votes.Down != 13 || p.ViewerVote != engagement.VoteDown {
		t.Errorf("switch to down: %+v", p.Votes)
	}

	p, _ = vote("riverside-park", "down")
	if p.Votes.Down != 12 || p.ViewerVote != engagement.VoteNone {
		t.Errorf("same vote should clear: %+v", p)
	}

	if _, code := vote("riverside-park", "sideways"); code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad vote, got %d", code)
	}
	if _, code := vote("no-such-proposal", "up"); code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown proposal, got %d", code)
	}

	w := env.do("GET", "/proposals", nil, token)
	var list models.ProposalsResponse
	testutil.AssertJSON(t, w, &list)
	if len(list.Proposals) != 4 || list.Proposals[0].TotalVotes != 246 {
		t.Errorf("Unexpected proposals %+v", list.Proposals)
	}
}

func TestImpact(t *testing.T) {
	env := newTestEnv(t, &capture.SimulatedCamera{})
	token := env.login(t, "Maya")

	w := env.do("GET", "/impact", nil, token)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ImpactResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Achievements) != 6 || resp.Unlocked != 5 {
		t.Errorf("Expected 5 of 6 achievements unlocked, got %d of %d", resp.Unlocked, len(resp.Achievements))
	}
	for _, s := range resp.Stories {
		if !strings.HasSuffix(s.Date, "ago") {
			t.Errorf("Story %d has date %q", s.ID, s.Date)
		}
	}
}

func TestImpactReportDownload(t *testing.T) {
	env := newTestEnv(t, &capture.SimulatedCamera{})
	token := env.login(t, "Maya")

	w := env.do("GET", "/impact/report", nil, token)
	testutil.AssertStatus(t, w, http.StatusOK)

	want := `attachment; filename="streetpulse-impact-20250601.json"`
	if got := w.Header().Get("Content-Disposition"); got != want {
		t.Errorf("Expected Content-Disposition %s, got %s", want, got)
	}

	var report models.ImpactReport
	testutil.AssertJSON(t, w, &report)
	if report.Viewer != "Maya" || report.UserStats.TotalPoints != 2450 {
		t.Errorf("Unexpected report %+v", report)
	}
}
