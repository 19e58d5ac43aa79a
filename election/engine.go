// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/campushq/schoolvote/models"
)

// Domain errors surfaced verbatim to callers. Anything else coming out of
// the engine is a storage failure and safe to retry.
var (
	ErrSchoolNotFound    = errors.New("school not found")
	ErrAlreadyCandidate  = errors.New("user has already declared candidacy for this school")
	ErrAlreadyVoted      = errors.New("voter has already cast a ballot in this election")
	ErrElectionNotActive = errors.New("no active election accepting votes")
	ErrCandidateMismatch = errors.New("candidate does not belong to the voter's school")
	ErrCandidateNotFound = errors.New("candidate not found")
)

// Engine runs school-admin elections: candidacy declarations, the
// threshold-triggered lifecycle, the vote ledger, lazy resolution, and the
// status projection. It holds no in-process state; every guarantee comes
// from the schema constraints and conditional updates it issues.
type Engine struct {
	db                 *sql.DB
	candidateThreshold int
	votingWindow       time.Duration
}

func NewEngine(db *sql.DB, candidateThreshold int, votingWindow time.Duration) *Engine {
	return &Engine{
		db:                 db,
		candidateThreshold: candidateThreshold,
		votingWindow:       votingWindow,
	}
}

// IsExpired reports whether the voting window has closed. The stored status
// may still read active; resolution happens lazily on the next status read.
func IsExpired(el models.Election, now time.Time) bool {
	return !now.Before(el.EndsAt)
}

// CurrentElection returns the school's most recent election by start time,
// or nil when the school has never had one.
func (e *Engine) CurrentElection(schoolID string) (*models.Election, error) {
	var el models.Election
	err := e.db.QueryRow(`
		SELECT id, school_id, status, starts_at, ends_at, winner_candidate_id
		FROM election
		WHERE school_id = $1
		ORDER BY starts_at DESC, id DESC
		LIMIT 1
	`, schoolID).Scan(
		&el.ID, &el.SchoolID, &el.Status, &el.StartsAt, &el.EndsAt, &el.WinnerCandidateID,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query current election: %w", err)
	}

	return &el, nil
}

func (e *Engine) getElection(electionID string) (models.Election, error) {
	var el models.Election
	err := e.db.QueryRow(`
		SELECT id, school_id, status, starts_at, ends_at, winner_candidate_id
		FROM election
		WHERE id = $1
	`, electionID).Scan(
		&el.ID, &el.SchoolID, &el.Status, &el.StartsAt, &el.EndsAt, &el.WinnerCandidateID,
	)
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to query election: %w", err)
	}
	return el, nil
}
