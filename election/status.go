// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/campushq/schoolvote/models"
)

// Status assembles the caller-facing election view: the current election,
// candidate standings with vote counts, the caller's own ballot, and
// whether the school already has an admin.
//
// This is where lazy resolution happens: an active election observed past
// its deadline is resolved before projecting. There is no background
// scheduler, so a school nobody queries keeps its formally active election
// past the deadline until the next read - a deliberate staleness window. A
// resolution failure never fails the read; the election is served stale
// (still active) and a later read retries.
func (e *Engine) Status(schoolID, callerUserID string, now time.Time) (models.ElectionStatus, error) {
	hasAdmin, err := e.schoolHasAdmin(schoolID)
	if err != nil {
		return models.ElectionStatus{}, err
	}

	cur, err := e.CurrentElection(schoolID)
	if err != nil {
		return models.ElectionStatus{}, err
	}

	if cur != nil && cur.Status == models.ElectionActive && IsExpired(*cur, now) {
		resolved, err := e.Resolve(*cur, now)
		if err != nil {
			slog.Warn("election resolution failed; serving stale status",
				"error", err, "election_id", cur.ID, "school_id", schoolID)
		} else {
			cur = &resolved
			// Resolution may have just appointed the admin
			hasAdmin, err = e.schoolHasAdmin(schoolID)
			if err != nil {
				return models.ElectionStatus{}, err
			}
		}
	}

	standings, err := e.candidateStandings(schoolID)
	if err != nil {
		return models.ElectionStatus{}, err
	}

	status := models.ElectionStatus{
		Election:       cur,
		Candidates:     standings,
		SchoolHasAdmin: hasAdmin,
	}

	if cur == nil {
		return status, nil
	}

	counts, myVote, err := e.votesByCandidate(cur.ID, callerUserID)
	if err != nil {
		return models.ElectionStatus{}, err
	}

	for i := range status.Candidates {
		status.Candidates[i].VotesCount = counts[status.Candidates[i].ID]
	}
	status.MyVoteCandidateID = myVote

	return status, nil
}

func (e *Engine) schoolHasAdmin(schoolID string) (bool, error) {
	var adminUserID *string
	err := e.db.QueryRow(`
		SELECT admin_user_id FROM school WHERE id = $1
	`, schoolID).Scan(&adminUserID)

	if err == sql.ErrNoRows {
		return false, ErrSchoolNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to query school: %w", err)
	}

	return adminUserID != nil && *adminUserID != "", nil
}

// candidateStandings lists the school's candidates in creation order, the
// same order the tie-break uses, with vote counts left at zero for the
// caller to fill in.
func (e *Engine) candidateStandings(schoolID string) ([]models.CandidateStanding, error) {
	rows, err := e.db.Query(`
		SELECT id, display_name, class_label, photo_url
		FROM candidate
		WHERE school_id = $1
		ORDER BY created_at ASC, id ASC
	`, schoolID)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	standings := []models.CandidateStanding{}
	for rows.Next() {
		var s models.CandidateStanding
		if err := rows.Scan(&s.ID, &s.DisplayName, &s.ClassLabel, &s.PhotoURL); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		standings = append(standings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}

	return standings, nil
}

// votesByCandidate aggregates counts for one election and locates the
// caller's own ballot in the same pass.
func (e *Engine) votesByCandidate(electionID, callerUserID string) (map[string]int, *string, error) {
	rows, err := e.db.Query(`
		SELECT candidate_id, voter_user_id FROM vote WHERE election_id = $1
	`, electionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	var myVote *string
	for rows.Next() {
		var candidateID, voterUserID string
		if err := rows.Scan(&candidateID, &voterUserID); err != nil {
			return nil, nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		counts[candidateID]++
		if voterUserID == callerUserID {
			cid := candidateID
			myVote = &cid
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read votes: %w", err)
	}

	return counts, myVote, nil
}
