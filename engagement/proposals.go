// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engagement

import (
	"errors"
	"fmt"
	"sync"

	"github.com/danielhkuo/streetpulse/catalog"
)

var (
	ErrProposalNotFound = errors.New("proposal not found")
	ErrInvalidVote      = errors.New("vote must be up or down")
)

type Vote string

const (
	VoteNone Vote = ""
	VoteUp   Vote = "up"
	VoteDown Vote = "down"
)

func ParseVote(s string) (Vote, error) {
	switch Vote(s) {
	case VoteUp, VoteDown:
		return Vote(s), nil
	}
	return VoteNone, fmt.Errorf("%w: %q", ErrInvalidVote, s)
}

// Proposal is a seeded proposal with the viewer's vote folded into its tally.
type Proposal struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Type        catalog.MetricType     `json:"type"`
	Location    string                 `json:"location"`
	Budget      string                 `json:"budget"`
	Timeline    string                 `json:"timeline"`
	Status      catalog.ProposalStatus `json:"status"`
	StatusColor string                 `json:"status_color"`
	Votes       catalog.VoteTally      `json:"votes"`
	TotalVotes  int                    `json:"total_votes"`
	ViewerVote  Vote                   `json:"viewer_vote,omitempty"`
	Comments    int                    `json:"comments"`
	Progress    int                    `json:"progress"`
	Impact      string                 `json:"impact"`
}

// ProposalBoard tracks one viewer's votes on the seeded proposals.
type ProposalBoard struct {
	mu        sync.Mutex
	proposals []catalog.ProposalSeed
	votes     map[string]Vote
}

func NewProposalBoard(seeds []catalog.ProposalSeed) *ProposalBoard {
	return &ProposalBoard{
		proposals: seeds,
		votes:     make(map[string]Vote),
	}
}

// Vote casts v on a proposal. Casting the same vote again clears it;
// casting the other vote switches.
func (b *ProposalBoard) Vote(id string, v Vote) (Proposal, error) {
	if v != VoteUp && v != VoteDown {
		return Proposal{}, ErrInvalidVote
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	seed, ok := b.find(id)
	if !ok {
		return Proposal{}, ErrProposalNotFound
	}

	if b.votes[id] == v {
		delete(b.votes, id)
	} else {
		b.votes[id] = v
	}
	return b.view(seed), nil
}

// Proposals lists every proposal in seed order.
func (b *ProposalBoard) Proposals() []Proposal {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Proposal, len(b.proposals))
	for i, p := range b.proposals {
		out[i] = b.view(p)
	}
	return out
}

func (b *ProposalBoard) find(id string) (catalog.ProposalSeed, bool) {
	for _, p := range b.proposals {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.ProposalSeed{}, false
}

func (b *ProposalBoard) view(p catalog.ProposalSeed) Proposal {
	vote := b.votes[p.ID]
	tally := p.Votes
	switch vote {
	case VoteUp:
		tally.Up++
	case VoteDown:
		tally.Down++
	}

	return Proposal{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Type:        p.Type,
		Location:    p.Location,
		Budget:      p.Budget,
		Timeline:    p.Timeline,
		Status:      p.Status,
		StatusColor: p.Status.Color(),
		Votes:       tally,
		TotalVotes:  tally.Up + tally.Down,
		ViewerVote:  vote,
		Comments:    p.Comments,
		Progress:    p.Progress,
		Impact:      p.Impact,
	}
}
