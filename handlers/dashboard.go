// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/streetpulse/catalog"
	"github.com/danielhkuo/streetpulse/db"
	"github.com/danielhkuo/streetpulse/engagement"
	"github.com/danielhkuo/streetpulse/middleware"
	"github.com/danielhkuo/streetpulse/models"
	"github.com/danielhkuo/streetpulse/workspace"
)

// recentReports is how many citizen reports the orbit view previews.
const recentReports = 3

// DashboardHandler serves the read-mostly dashboard pages: pulse, orbit,
// missions, proposals and impact.
type DashboardHandler struct {
	manager     *workspace.Manager
	submissions *db.SubmissionStore
}

func NewDashboardHandler(manager *workspace.Manager, submissions *db.SubmissionStore) *DashboardHandler {
	return &DashboardHandler{manager: manager, submissions: submissions}
}

// Pulse handles GET /pulse
func (h *DashboardHandler) Pulse(w http.ResponseWriter, r *http.Request) {
	seed := h.manager.Seed()
	now := h.manager.Now()

	score := catalog.ClampScore(seed.WellbeingScore)
	label, color := catalog.WellbeingLabel(score)

	metrics := make([]models.MetricView, len(seed.Metrics))
	for i, m := range seed.Metrics {
		info := m.Type.Info()
		metrics[i] = models.MetricView{
			Type:        m.Type,
			Title:       info.Title,
			Icon:        info.Icon,
			Color:       info.Color,
			CardClass:   info.Card,
			Value:       m.Value,
			Status:      m.Status,
			StatusColor: m.Status.Color(),
			Description: m.Description,
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.PulseResponse{
		WellbeingScore: score,
		WellbeingLabel: label,
		WellbeingColor: color,
		UpdatedLabel:   catalog.RelativeLabel(now, time.Duration(seed.UpdatedMinutesAgo)*time.Minute),
		Sources:        seed.Sources,
		Alert:          seed.Alert,
		Metrics:        metrics,
	})
}

// Orbit handles GET /orbit
func (h *DashboardHandler) Orbit(w http.ResponseWriter, r *http.Request) {
	ws, ok := viewerWorkspace(h.manager, r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "sign in required")
		return
	}
	h.writeOrbit(w, ws, ws.Map.State())
}

// ToggleMode handles POST /orbit/mode
func (h *DashboardHandler) ToggleMode(w http.ResponseWriter, r *http.Request) {
	ws, ok := viewerWorkspace(h.manager, r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "sign in required")
		return
	}
	h.writeOrbit(w, ws, ws.Map.ToggleMode())
}

// ToggleLayer handles POST /orbit/layers/{type}
func (h *DashboardHandler) ToggleLayer(w http.ResponseWriter, r *http.Request) {
	ws, ok := viewerWorkspace(h.manager, r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "sign in required")
		return
	}

	state, err := ws.Map.ToggleLayer(r.PathValue("type"))
	if err != nil {
		writeError(w, err)
		return
	}
	h.writeOrbit(w, ws, state)
}

func (h *DashboardHandler) writeOrbit(w http.ResponseWriter, ws *workspace.Workspace, state workspace.MapState) {
	seed := h.manager.Seed()

	active := make(map[catalog.MetricType]bool, len(state.ActiveLayers))
	for _, t := range state.ActiveLayers {
		active[t] = true
	}

	layers := make([]models.LayerView, len(seed.Layers))
	for i, l := range seed.Layers {
		info := l.Type.Info()
		layers[i] = models.LayerView{
			Type:      l.Type,
			Title:     info.Title,
			Color:     info.Color,
			Intensity: l.Intensity,
			Active:    active[l.Type],
		}
	}

	reports := ws.Reports.Reports()
	if len(reports) > recentReports {
		reports = reports[:recentReports]
	}

	middleware.JSONResponse(w, http.StatusOK, models.OrbitResponse{
		Mode:   state.Mode,
		Layers: layers,
		Citizens: models.CitizenSummary{
			Total:  seed.CitizenTotal,
			Recent: reports,
		},
	})
}

// Missions handles GET /missions
func (h *DashboardHandler) Missions(w http.ResponseWriter, r *http.Request) {
	ws, ok := viewerWorkspace(h.manager, r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "sign in required")
		return
	}

	seed := h.manager.Seed()
	missions := make([]models.MissionView, len(seed.Missions))
	for i, m := range seed.Missions {
		n, err := h.submissions.CountByMission(r.Context(), m.ID)
		if err != nil {
			slog.Error("failed to count submissions", "error", err, "mission_id", m.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		missions[i] = models.MissionView{
			Mission:     m,
			ActiveLabel: humanize.Comma(int64(m.Active)) + " active",
			Submissions: n,
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.MissionsResponse{
		Missions: missions,
		Stats:    ws.Stats(),
	})
}

// Proposals handles GET /proposals
func (h *DashboardHandler) Proposals(w http.ResponseWriter, r *http.Request) {
	ws, ok := viewerWorkspace(h.manager, r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "sign in required")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ProposalsResponse{
		Proposals: ws.Proposals.Proposals(),
	})
}

// Vote handles POST /proposals/{id}/vote
func (h *DashboardHandler) Vote(w http.ResponseWriter, r *http.Request) {
	ws, ok := viewerWorkspace(h.manager, r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	vote, err := engagement.ParseVote(req.Vote)
	if err != nil {
		writeError(w, err)
		return
	}

	proposal, err := ws.Proposals.Vote(r.PathValue("id"), vote)
	if err != nil {
		writeError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, proposal)
}

// Impact handles GET /impact
func (h *DashboardHandler) Impact(w http.ResponseWriter, r *http.Request) {
	seed := h.manager.Seed()

	unlocked := 0
	for _, a := range seed.Impact.Achievements {
		if a.Unlocked {
			unlocked++
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.ImpactResponse{
		Stats:        seed.Impact.Stats,
		Achievements: seed.Impact.Achievements,
		Unlocked:     unlocked,
		Stories:      seed.Stories(h.manager.Now()),
	})
}

// ImpactReport handles GET /impact/report, served as a JSON download.
func (h *DashboardHandler) ImpactReport(w http.ResponseWriter, r *http.Request) {
	ws, ok := viewerWorkspace(h.manager, r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "sign in required")
		return
	}

	seed := h.manager.Seed()
	now := h.manager.Now()

	filename := fmt.Sprintf("streetpulse-impact-%s.json", now.Format("20060102"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	middleware.JSONResponse(w, http.StatusOK, models.ImpactReport{
		Viewer:       ws.Viewer.DisplayName,
		GeneratedAt:  now,
		UserStats:    ws.Stats(),
		Stats:        seed.Impact.Stats,
		Achievements: seed.Impact.Achievements,
	})
}

// Submissions handles GET /submissions
func (h *DashboardHandler) Submissions(w http.ResponseWriter, r *http.Request) {
	v, ok := middleware.ViewerFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "sign in required")
		return
	}

	records, err := h.submissions.ListByViewer(r.Context(), v.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.SubmissionsResponse{Submissions: records})
}

// SubmissionFrame handles GET /submissions/{id}/frame
func (h *DashboardHandler) SubmissionFrame(w http.ResponseWriter, r *http.Request) {
	v, ok := middleware.ViewerFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "sign in required")
		return
	}

	data, mime, err := h.submissions.Frame(r.Context(), v.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
