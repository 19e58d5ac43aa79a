// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"errors"
	"testing"
	"time"

	"github.com/campushq/schoolvote/models"
	"github.com/campushq/schoolvote/testutil"
)

func TestCastVote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cityID := testutil.CreateTestCity(t, db, "Springfield")
	schoolID := testutil.CreateTestSchool(t, db, cityID, "Springfield High")
	candUserID, _ := testutil.CreateTestUser(t, db, schoolID, "Alice")
	voterID, _ := testutil.CreateTestUser(t, db, schoolID, "Bob")

	candidateID := testutil.AddTestCandidate(t, db, schoolID, candUserID, "Alice", time.Now().UTC())

	now := time.Now().UTC()
	electionID := testutil.CreateTestElection(t, db, schoolID, models.ElectionActive,
		now.Add(-time.Hour), now.Add(time.Hour))

	engine := NewEngine(db, 6, 24*time.Hour)

	ipHash := "abc123"
	vote, err := engine.CastVote(VoteInput{
		SchoolID:    schoolID,
		VoterUserID: voterID,
		CandidateID: candidateID,
		IPHash:      &ipHash,
	})
	if err != nil {
		t.Fatalf("CastVote() error = %v", err)
	}
	if vote.ElectionID != electionID {
		t.Errorf("Expected vote in election %s, got %s", electionID, vote.ElectionID)
	}

	// Verify the ballot row, including the audit column
	var storedIPHash *string
	err = db.QueryRow(`
		SELECT ip_hash FROM vote WHERE id = $1
	`, vote.ID).Scan(&storedIPHash)
	if err != nil {
		t.Fatalf("Failed to query vote: %v", err)
	}
	if storedIPHash == nil || *storedIPHash != ipHash {
		t.Error("IP hash was not stored with the ballot")
	}
}

func TestCastVoteDuplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cityID := testutil.CreateTestCity(t, db, "Springfield")
	schoolID := testutil.CreateTestSchool(t, db, cityID, "Springfield High")
	candUserID, _ := testutil.CreateTestUser(t, db, schoolID, "Alice")
	candUserID2, _ := testutil.CreateTestUser(t, db, schoolID, "Carol")
	voterID, _ := testutil.CreateTestUser(t, db, schoolID, "Bob")

	cand1 := testutil.AddTestCandidate(t, db, schoolID, candUserID, "Alice", time.Now().UTC())
	cand2 := testutil.AddTestCandidate(t, db, schoolID, candUserID2, "Carol", time.Now().UTC())

	now := time.Now().UTC()
	electionID := testutil.CreateTestElection(t, db, schoolID, models.ElectionActive,
		now.Add(-time.Hour), now.Add(time.Hour))

	engine := NewEngine(db, 6, 24*time.Hour)

	if _, err := engine.CastVote(VoteInput{
		SchoolID:    schoolID,
		VoterUserID: voterID,
		CandidateID: cand1,
	}); err != nil {
		t.Fatalf("First CastVote() error = %v", err)
	}

	// A second ballot fails even for a different candidate; votes are immutable
	_, err := engine.CastVote(VoteInput{
		SchoolID:    schoolID,
		VoterUserID: voterID,
		CandidateID: cand2,
	})
	if !errors.Is(err, ErrAlreadyVoted) {
		t.Errorf("Expected ErrAlreadyVoted, got %v", err)
	}

	// The original ballot is untouched
	var storedCandidate string
	err = db.QueryRow(`
		SELECT candidate_id FROM vote WHERE election_id = $1 AND voter_user_id = $2
	`, electionID, voterID).Scan(&storedCandidate)
	if err != nil {
		t.Fatalf("Failed to query vote: %v", err)
	}
	if storedCandidate != cand1 {
		t.Errorf("Expected original vote for %s to stand, got %s", cand1, storedCandidate)
	}
}

func TestCastVoteErrors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cityID := testutil.CreateTestCity(t, db, "Springfield")
	schoolID := testutil.CreateTestSchool(t, db, cityID, "Springfield High")
	otherSchoolID := testutil.CreateTestSchool(t, db, cityID, "Shelbyville High")

	candUserID, _ := testutil.CreateTestUser(t, db, schoolID, "Alice")
	otherCandUserID, _ := testutil.CreateTestUser(t, db, otherSchoolID, "Eve")
	voterID, _ := testutil.CreateTestUser(t, db, schoolID, "Bob")

	candidateID := testutil.AddTestCandidate(t, db, schoolID, candUserID, "Alice", time.Now().UTC())
	foreignCandidateID := testutil.AddTestCandidate(t, db, otherSchoolID, otherCandUserID, "Eve", time.Now().UTC())

	engine := NewEngine(db, 6, 24*time.Hour)

	// No election at all
	_, err := engine.CastVote(VoteInput{
		SchoolID:    schoolID,
		VoterUserID: voterID,
		CandidateID: candidateID,
	})
	if !errors.Is(err, ErrElectionNotActive) {
		t.Errorf("Expected ErrElectionNotActive with no election, got %v", err)
	}

	// Unknown candidate
	_, err = engine.CastVote(VoteInput{
		SchoolID:    schoolID,
		VoterUserID: voterID,
		CandidateID: "nonexistent",
	})
	if !errors.Is(err, ErrCandidateNotFound) {
		t.Errorf("Expected ErrCandidateNotFound, got %v", err)
	}

	// Candidate from another school
	_, err = engine.CastVote(VoteInput{
		SchoolID:    schoolID,
		VoterUserID: voterID,
		CandidateID: foreignCandidateID,
	})
	if !errors.Is(err, ErrCandidateMismatch) {
		t.Errorf("Expected ErrCandidateMismatch, got %v", err)
	}
}

func TestCastVoteAfterDeadline(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cityID := testutil.CreateTestCity(t, db, "Springfield")
	schoolID := testutil.CreateTestSchool(t, db, cityID, "Springfield High")
	candUserID, _ := testutil.CreateTestUser(t, db, schoolID, "Alice")
	voterID, _ := testutil.CreateTestUser(t, db, schoolID, "Bob")

	candidateID := testutil.AddTestCandidate(t, db, schoolID, candUserID, "Alice", time.Now().UTC())

	// Election past its deadline, but nobody has read status yet so the
	// stored row still says active
	now := time.Now().UTC()
	electionID := testutil.CreateTestElection(t, db, schoolID, models.ElectionActive,
		now.Add(-2*time.Hour), now.Add(-time.Hour))

	engine := NewEngine(db, 6, 24*time.Hour)

	_, err := engine.CastVote(VoteInput{
		SchoolID:    schoolID,
		VoterUserID: voterID,
		CandidateID: candidateID,
	})
	if !errors.Is(err, ErrElectionNotActive) {
		t.Errorf("Expected ErrElectionNotActive after deadline, got %v", err)
	}

	// The rejection must not depend on resolution having run
	var status string
	err = db.QueryRow(`SELECT status FROM election WHERE id = $1`, electionID).Scan(&status)
	if err != nil {
		t.Fatalf("Failed to query election: %v", err)
	}
	if status != models.ElectionActive {
		t.Errorf("Expected stored status to still be active, got %s", status)
	}

	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM vote WHERE election_id = $1`, electionID).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 votes, got %d", count)
	}
}

func TestCastVoteInFinishedElection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cityID := testutil.CreateTestCity(t, db, "Springfield")
	schoolID := testutil.CreateTestSchool(t, db, cityID, "Springfield High")
	candUserID, _ := testutil.CreateTestUser(t, db, schoolID, "Alice")
	voterID, _ := testutil.CreateTestUser(t, db, schoolID, "Bob")

	candidateID := testutil.AddTestCandidate(t, db, schoolID, candUserID, "Alice", time.Now().UTC())

	now := time.Now().UTC()
	testutil.CreateTestElection(t, db, schoolID, models.ElectionFinished,
		now.Add(-2*time.Hour), now.Add(-time.Hour))

	engine := NewEngine(db, 6, 24*time.Hour)

	_, err := engine.CastVote(VoteInput{
		SchoolID:    schoolID,
		VoterUserID: voterID,
		CandidateID: candidateID,
	})
	if !errors.Is(err, ErrElectionNotActive) {
		t.Errorf("Expected ErrElectionNotActive for finished election, got %v", err)
	}
}
