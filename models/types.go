package models

import "time"

// Election status constants
const (
	ElectionActive   = "active"
	ElectionFinished = "finished"
)

// Request types

type RegisterUserRequest struct {
	DisplayName string  `json:"display_name"`
	ClassLabel  *string `json:"class_label,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
	SchoolID    string  `json:"school_id"`
}

type CreateCityRequest struct {
	Name string `json:"name"`
}

type CreateSchoolRequest struct {
	CityID  string  `json:"city_id"`
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
}

type DeclareCandidacyRequest struct {
	DisplayName string  `json:"display_name"`
	ClassLabel  *string `json:"class_label,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
}

type CastVoteRequest struct {
	CandidateID string `json:"candidate_id"`
}

// Response types

type RegisterUserResponse struct {
	UserID       string `json:"user_id"`
	SessionToken string `json:"session_token"`
}

type CreateCityResponse struct {
	CityID string `json:"city_id"`
}

type CreateSchoolResponse struct {
	SchoolID string `json:"school_id"`
}

type DeclareCandidacyResponse struct {
	CandidateID string `json:"candidate_id"`
}

type CastVoteResponse struct {
	VoteID  string `json:"vote_id"`
	Message string `json:"message"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain types

type City struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type School struct {
	ID          string    `json:"id"`
	CityID      string    `json:"city_id"`
	Name        string    `json:"name"`
	Address     *string   `json:"address,omitempty"`
	AdminUserID *string   `json:"admin_user_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type User struct {
	ID           string    `json:"id"`
	SessionToken string    `json:"-"` // Never expose in JSON
	DisplayName  string    `json:"display_name"`
	ClassLabel   *string   `json:"class_label,omitempty"`
	PhotoURL     *string   `json:"photo_url,omitempty"`
	SchoolID     *string   `json:"school_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Candidate struct {
	ID          string    `json:"id"`
	SchoolID    string    `json:"school_id"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	ClassLabel  *string   `json:"class_label,omitempty"`
	PhotoURL    *string   `json:"photo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Election struct {
	ID                string    `json:"id"`
	SchoolID          string    `json:"school_id"`
	Status            string    `json:"status"`
	StartsAt          time.Time `json:"starts_at"`
	EndsAt            time.Time `json:"ends_at"`
	WinnerCandidateID *string   `json:"winner_candidate_id,omitempty"`
}

type Vote struct {
	ID          string    `json:"id"`
	ElectionID  string    `json:"election_id"`
	VoterUserID string    `json:"voter_user_id"`
	CandidateID string    `json:"candidate_id"`
	IPHash      *string   `json:"-"` // Never expose in JSON
	UserAgent   *string   `json:"-"` // Never expose in JSON
	CreatedAt   time.Time `json:"created_at"`
}

// Status projection types

// CandidateStanding is a candidate plus their current vote count, as shown
// on the election screen.
type CandidateStanding struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	ClassLabel  *string `json:"class_label,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
	VotesCount  int     `json:"votes_count"`
}

// ElectionStatus is the caller-facing view of a school's election.
// Election is nil when the school has never crossed the candidate threshold.
type ElectionStatus struct {
	Election          *Election           `json:"election"`
	Candidates        []CandidateStanding `json:"candidates"`
	MyVoteCandidateID *string             `json:"my_vote_candidate_id"`
	SchoolHasAdmin    bool                `json:"school_has_admin"`
}
