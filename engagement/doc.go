// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engagement holds a viewer's likes, comments and proposal votes.

# Report Store

Store owns an ordered set of reports. Mutation goes through two operations:

	report, err := store.ToggleLike(reportID)
	comment, err := store.AddComment(reportID, text)

ToggleLike flips LikedByViewer and moves LikeCount by one (never below
zero). AddComment trims the text, rejects blank input with ErrEmptyComment
and assigns the next comment id (max existing + 1). Unknown report ids
return ErrReportNotFound without touching state.

Overlay selection is a separate, non-mutating concern:

	store.SelectForDetail(reportID)
	store.SelectForComments(reportID)
	sel, report := store.Selection()

Only one overlay subject is active at a time.

Subscribers registered with Subscribe are called after each successful
change, outside the store lock.

# Proposal Votes

ProposalBoard keeps one up/down vote per proposal. Casting the same vote
twice clears it.
*/
package engagement
