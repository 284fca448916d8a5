// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engagement

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/streetpulse/catalog"
)

var (
	ErrReportNotFound = errors.New("report not found")
	ErrEmptyComment   = errors.New("comment text is empty")
)

// JustNow is the display label given to comments created in this session.
const JustNow = "just now"

type Comment struct {
	ID        int       `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

type Engagement struct {
	LikeCount     int       `json:"like_count"`
	LikedByViewer bool      `json:"liked_by_viewer"`
	CommentCount  int       `json:"comment_count"`
	Comments      []Comment `json:"comments"`
}

type Report struct {
	ID         string             `json:"id"`
	Type       catalog.MetricType `json:"type"`
	Location   string             `json:"location"`
	Summary    string             `json:"summary"`
	Author     string             `json:"author"`
	Label      string             `json:"label"`
	Engagement Engagement         `json:"engagement"`
}

// clone deep-copies r so callers never share the comment slice.
func (r *Report) clone() Report {
	out := *r
	out.Engagement.Comments = slices.Clone(r.Engagement.Comments)
	return out
}

// Overlay names which modal a selected report is shown in.
type Overlay string

const (
	OverlayNone     Overlay = ""
	OverlayDetail   Overlay = "detail"
	OverlayComments Overlay = "comments"
)

type Selection struct {
	Overlay  Overlay `json:"overlay"`
	ReportID string  `json:"report_id,omitempty"`
}

// ChangeKind tells subscribers what happened to a report.
type ChangeKind string

const (
	ChangeLike      ChangeKind = "like"
	ChangeComment   ChangeKind = "comment"
	ChangeSelection ChangeKind = "selection"
)

type Change struct {
	Kind     ChangeKind
	ReportID string
	Report   Report
}

// Store holds the engagement state for one viewer's reports. All access
// goes through its methods; it never hands out the backing slices.
type Store struct {
	mu        sync.Mutex
	viewer    string
	now       func() time.Time
	reports   []*Report
	index     map[string]*Report
	selection Selection
	observers []func(Change)
}

// NewStore builds a store over reports. viewer is the author label put on
// new comments.
func NewStore(viewer string, reports []Report, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	s := &Store{
		viewer: viewer,
		now:    now,
		index:  make(map[string]*Report, len(reports)),
	}
	for i := range reports {
		r := reports[i].clone()
		r.Engagement.CommentCount = len(r.Engagement.Comments)
		s.reports = append(s.reports, &r)
		s.index[r.ID] = &r
	}
	return s
}

// FromSeed converts seeded reports into the store's input, with labels
// relative to now.
func FromSeed(seeds []catalog.ReportSeed, now time.Time) []Report {
	out := make([]Report, 0, len(seeds))
	for _, rs := range seeds {
		r := Report{
			ID:       rs.ID,
			Type:     rs.Type,
			Location: rs.Location,
			Summary:  rs.Summary,
			Author:   rs.Author,
			Label:    catalog.RelativeLabel(now, time.Duration(rs.MinutesAgo)*time.Minute),
		}
		r.Engagement.LikeCount = rs.Likes
		for _, cs := range rs.Comments {
			age := time.Duration(cs.MinutesAgo) * time.Minute
			r.Engagement.Comments = append(r.Engagement.Comments, Comment{
				ID:        cs.ID,
				Author:    cs.Author,
				Text:      cs.Text,
				Label:     catalog.RelativeLabel(now, age),
				CreatedAt: now.Add(-age),
			})
		}
		r.Engagement.CommentCount = len(r.Engagement.Comments)
		out = append(out, r)
	}
	return out
}

// Subscribe registers fn to be called after every successful mutation.
// fn runs with the store unlocked.
func (s *Store) Subscribe(fn func(Change)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

func (s *Store) notify(observers []func(Change), c Change) {
	for _, fn := range observers {
		fn(c)
	}
}

// Reports returns a copy of every report in seed order.
func (s *Store) Reports() []Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Report, len(s.reports))
	for i, r := range s.reports {
		out[i] = r.clone()
	}
	return out
}

// Report returns a copy of a single report.
func (s *Store) Report(id string) (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.index[id]
	if !ok {
		return Report{}, ErrReportNotFound
	}
	return r.clone(), nil
}

// ToggleLike flips the viewer's like on a report.
func (s *Store) ToggleLike(id string) (Report, error) {
	s.mu.Lock()
	r, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return Report{}, ErrReportNotFound
	}

	e := &r.Engagement
	if e.LikedByViewer {
		e.LikedByViewer = false
		if e.LikeCount > 0 {
			e.LikeCount--
		}
	} else {
		e.LikedByViewer = true
		e.LikeCount++
	}

	out := r.clone()
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	s.notify(observers, Change{Kind: ChangeLike, ReportID: id, Report: out})
	return out, nil
}

// AddComment appends a comment from the viewer. Text that is empty after
// trimming is rejected and nothing changes.
func (s *Store) AddComment(id, text string) (Comment, error) {
	text = strings.TrimSpace(text)

	s.mu.Lock()
	r, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return Comment{}, ErrReportNotFound
	}
	if text == "" {
		s.mu.Unlock()
		return Comment{}, ErrEmptyComment
	}

	next := 1
	for _, c := range r.Engagement.Comments {
		if c.ID >= next {
			next = c.ID + 1
		}
	}

	c := Comment{
		ID:        next,
		Author:    s.viewer,
		Text:      text,
		Label:     JustNow,
		CreatedAt: s.now(),
	}
	r.Engagement.Comments = append(r.Engagement.Comments, c)
	r.Engagement.CommentCount = len(r.Engagement.Comments)

	out := r.clone()
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	s.notify(observers, Change{Kind: ChangeComment, ReportID: id, Report: out})
	return c, nil
}

// SelectForDetail makes id the subject of the detail overlay.
func (s *Store) SelectForDetail(id string) error {
	return s.selectFor(OverlayDetail, id)
}

// SelectForComments makes id the subject of the comments overlay.
func (s *Store) SelectForComments(id string) error {
	return s.selectFor(OverlayComments, id)
}

// selectFor replaces any open overlay; there is only one subject at a time.
func (s *Store) selectFor(o Overlay, id string) error {
	s.mu.Lock()
	r, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return ErrReportNotFound
	}
	s.selection = Selection{Overlay: o, ReportID: id}
	out := r.clone()
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	s.notify(observers, Change{Kind: ChangeSelection, ReportID: id, Report: out})
	return nil
}

// ClearSelection closes the active overlay.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = Selection{}
}

// Selection returns the active overlay and its report, if any.
func (s *Store) Selection() (Selection, *Report) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selection.Overlay == OverlayNone {
		return s.selection, nil
	}
	r := s.index[s.selection.ReportID].clone()
	return s.selection, &r
}
