// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/campushq/schoolvote/db"
	"github.com/campushq/schoolvote/models"
)

// CandidacyInput describes a declaration. SchoolID must already be verified
// as the declaring user's school.
type CandidacyInput struct {
	SchoolID    string
	UserID      string
	DisplayName string
	ClassLabel  *string
	PhotoURL    *string
}

// DeclareCandidacy records a user's candidacy for their school's admin
// seat. A user may declare at most once per school for the school's
// lifetime; the UNIQUE(school_id, user_id) constraint enforces this, so a
// double-tap simply fails with ErrAlreadyCandidate.
//
// Crossing the candidate threshold opens an election as a side effect. A
// failure to open never fails the declaration itself: the caller's
// candidacy is already durable, and the next declaration or status read
// gives the trigger another chance.
func (e *Engine) DeclareCandidacy(in CandidacyInput) (models.Candidate, error) {
	if in.DisplayName == "" {
		return models.Candidate{}, errors.New("display name is required")
	}

	cand := models.Candidate{
		ID:          uuid.NewString(),
		SchoolID:    in.SchoolID,
		UserID:      in.UserID,
		DisplayName: in.DisplayName,
		ClassLabel:  in.ClassLabel,
		PhotoURL:    in.PhotoURL,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := e.db.Exec(`
		INSERT INTO candidate (id, school_id, user_id, display_name, class_label, photo_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, cand.ID, cand.SchoolID, cand.UserID, cand.DisplayName, cand.ClassLabel, cand.PhotoURL, cand.CreatedAt)

	if db.IsUniqueViolation(err) {
		return models.Candidate{}, ErrAlreadyCandidate
	}
	if err != nil {
		return models.Candidate{}, fmt.Errorf("failed to insert candidate: %w", err)
	}

	slog.Info("candidacy declared", "school_id", cand.SchoolID, "candidate_id", cand.ID)

	var count int
	err = e.db.QueryRow(`
		SELECT COUNT(*) FROM candidate WHERE school_id = $1
	`, in.SchoolID).Scan(&count)

	if err != nil {
		slog.Error("failed to count candidates after declaration", "error", err, "school_id", in.SchoolID)
		return cand, nil
	}

	if count >= e.candidateThreshold {
		opened, err := e.OpenElection(in.SchoolID, time.Now().UTC())
		if err != nil {
			slog.Error("failed to open election at threshold", "error", err, "school_id", in.SchoolID)
		} else if opened {
			slog.Info("candidate threshold reached", "school_id", in.SchoolID, "candidates", count)
		}
	}

	return cand, nil
}

// OpenElection starts a voting round for the school. At most one active
// election per school can exist: the partial unique index on
// election(school_id) WHERE status='active' makes the insert itself the
// arbiter, so the loser of a concurrent open observes a constraint
// violation and no-ops. Returns whether this call created the election.
func (e *Engine) OpenElection(schoolID string, now time.Time) (bool, error) {
	// Cheap pre-check keeps the common case to one round trip; the index is
	// what actually guarantees uniqueness.
	cur, err := e.CurrentElection(schoolID)
	if err != nil {
		return false, err
	}
	if cur != nil && cur.Status == models.ElectionActive {
		return false, nil
	}

	el := models.Election{
		ID:       uuid.NewString(),
		SchoolID: schoolID,
		Status:   models.ElectionActive,
		StartsAt: now,
		EndsAt:   now.Add(e.votingWindow),
	}

	_, err = e.db.Exec(`
		INSERT INTO election (id, school_id, status, starts_at, ends_at, winner_candidate_id)
		VALUES ($1, $2, $3, $4, $5, NULL)
	`, el.ID, el.SchoolID, el.Status, el.StartsAt, el.EndsAt)

	if db.IsUniqueViolation(err) {
		// Another declaration opened it first
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to insert election: %w", err)
	}

	slog.Info("election opened",
		"election_id", el.ID,
		"school_id", schoolID,
		"closes", humanize.Time(el.EndsAt),
	)

	return true, nil
}
