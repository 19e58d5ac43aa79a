// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/campushq/schoolvote/db"
	"github.com/campushq/schoolvote/models"
)

// VoteInput describes a ballot. SchoolID must already be verified as the
// voter's school.
type VoteInput struct {
	SchoolID    string
	VoterUserID string
	CandidateID string
	IPHash      *string
	UserAgent   *string
}

// CastVote records one ballot in the school's active election. Votes are
// immutable; there is no update or withdrawal path. The
// UNIQUE(election_id, voter_user_id) constraint is the duplicate guard, so
// two concurrent casts from the same voter cannot both land - the second
// fails with ErrAlreadyVoted regardless of interleaving. A retried cast
// after a network error re-fails the same way, which is the correct
// terminal outcome.
func (e *Engine) CastVote(in VoteInput) (models.Vote, error) {
	var candidateSchoolID string
	err := e.db.QueryRow(`
		SELECT school_id FROM candidate WHERE id = $1
	`, in.CandidateID).Scan(&candidateSchoolID)

	if err == sql.ErrNoRows {
		return models.Vote{}, ErrCandidateNotFound
	}
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to query candidate: %w", err)
	}

	if candidateSchoolID != in.SchoolID {
		return models.Vote{}, ErrCandidateMismatch
	}

	cur, err := e.CurrentElection(in.SchoolID)
	if err != nil {
		return models.Vote{}, err
	}
	if cur == nil || cur.Status != models.ElectionActive {
		return models.Vote{}, ErrElectionNotActive
	}

	now := time.Now().UTC()
	if IsExpired(*cur, now) {
		// Past the deadline the stored status may still read active until a
		// status read resolves it; the ballot is rejected either way.
		return models.Vote{}, ErrElectionNotActive
	}

	vote := models.Vote{
		ID:          uuid.NewString(),
		ElectionID:  cur.ID,
		VoterUserID: in.VoterUserID,
		CandidateID: in.CandidateID,
		IPHash:      in.IPHash,
		UserAgent:   in.UserAgent,
		CreatedAt:   now,
	}

	_, err = e.db.Exec(`
		INSERT INTO vote (id, election_id, voter_user_id, candidate_id, ip_hash, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, vote.ID, vote.ElectionID, vote.VoterUserID, vote.CandidateID, vote.IPHash, vote.UserAgent, vote.CreatedAt)

	if db.IsUniqueViolation(err) {
		return models.Vote{}, ErrAlreadyVoted
	}
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to insert vote: %w", err)
	}

	slog.Info("vote cast", "election_id", vote.ElectionID, "candidate_id", vote.CandidateID)

	return vote, nil
}
