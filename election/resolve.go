// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/campushq/schoolvote/models"
)

// Resolve finishes an expired active election: it tallies the ledger, picks
// the plurality winner, transitions the election to finished, and appoints
// the winner as school admin.
//
// The transition is a conditional update guarded on status = 'active', which
// makes it the mutual-exclusion point: of any number of concurrent status
// reads observing the same expired election, exactly one applies the tally
// and the admin side effect; the rest lose the update race and re-read the
// finished row. Calling Resolve on an already-finished election is a no-op.
//
// Tie-break is fixed and deterministic: the earliest-created candidate among
// those tied for the maximum wins. An election with zero ballots finishes
// with no winner and leaves the school's admin seat untouched.
func (e *Engine) Resolve(el models.Election, now time.Time) (models.Election, error) {
	if el.Status != models.ElectionActive {
		return el, nil
	}
	if !IsExpired(el, now) {
		return el, nil
	}

	counts, err := e.tallyVotes(el.ID)
	if err != nil {
		return models.Election{}, err
	}

	winnerID, err := e.pickWinner(el.SchoolID, counts)
	if err != nil {
		return models.Election{}, err
	}

	res, err := e.db.Exec(`
		UPDATE election
		SET status = $1, winner_candidate_id = $2
		WHERE id = $3 AND status = $4
	`, models.ElectionFinished, winnerID, el.ID, models.ElectionActive)

	if err != nil {
		return models.Election{}, fmt.Errorf("failed to finish election: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to check election transition: %w", err)
	}
	if affected == 0 {
		// A concurrent status read resolved it first; its result stands
		return e.getElection(el.ID)
	}

	if winnerID == nil {
		slog.Info("election finished without votes", "election_id", el.ID, "school_id", el.SchoolID)
		return e.getElection(el.ID)
	}

	var winnerUserID string
	err = e.db.QueryRow(`
		SELECT user_id FROM candidate WHERE id = $1
	`, *winnerID).Scan(&winnerUserID)

	if err != nil {
		return models.Election{}, fmt.Errorf("failed to load winning candidate: %w", err)
	}

	_, err = e.db.Exec(`
		UPDATE school SET admin_user_id = $1 WHERE id = $2
	`, winnerUserID, el.SchoolID)

	if err != nil {
		return models.Election{}, fmt.Errorf("failed to appoint school admin: %w", err)
	}

	slog.Info("election finished",
		"election_id", el.ID,
		"school_id", el.SchoolID,
		"winner_candidate_id", *winnerID,
		"admin_user_id", winnerUserID,
	)

	return e.getElection(el.ID)
}

// tallyVotes aggregates ballot counts per candidate for one election.
func (e *Engine) tallyVotes(electionID string) (map[string]int, error) {
	rows, err := e.db.Query(`
		SELECT candidate_id FROM vote WHERE election_id = $1
	`, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var candidateID string
		if err := rows.Scan(&candidateID); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		counts[candidateID]++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read votes: %w", err)
	}

	return counts, nil
}

// pickWinner selects the plurality winner, scanning candidates in creation
// order so that ties resolve to the earliest declaration. The scan is
// explicit rather than delegated to a DB-side ORDER BY on counts, which is
// not deterministic across backends. Returns nil when no ballots were cast.
func (e *Engine) pickWinner(schoolID string, counts map[string]int) (*string, error) {
	if len(counts) == 0 {
		return nil, nil
	}

	rows, err := e.db.Query(`
		SELECT id FROM candidate
		WHERE school_id = $1
		ORDER BY created_at ASC, id ASC
	`, schoolID)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var winnerID string
	maxVotes := 0
	for rows.Next() {
		var candidateID string
		if err := rows.Scan(&candidateID); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		// Strictly greater: an earlier candidate keeps the win on a tie
		if counts[candidateID] > maxVotes {
			maxVotes = counts[candidateID]
			winnerID = candidateID
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}

	if maxVotes == 0 {
		return nil, nil
	}
	return &winnerID, nil
}
