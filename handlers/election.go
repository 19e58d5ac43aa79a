// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/campushq/schoolvote/auth"
	"github.com/campushq/schoolvote/cliparse"
	"github.com/campushq/schoolvote/election"
	"github.com/campushq/schoolvote/identity"
	"github.com/campushq/schoolvote/middleware"
	"github.com/campushq/schoolvote/models"
)

type ElectionHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	engine *election.Engine
}

func NewElectionHandler(db *sql.DB, cfg cliparse.Config) *ElectionHandler {
	return &ElectionHandler{
		db:     db,
		cfg:    cfg,
		engine: election.NewEngine(db, cfg.CandidateThreshold, cfg.VotingWindow),
	}
}

// resolveSchoolCaller authenticates the request and checks that the path
// school is the caller's own school. Writes the error response itself and
// returns ok=false when the request must not proceed.
func (h *ElectionHandler) resolveSchoolCaller(w http.ResponseWriter, r *http.Request) (identity.Caller, string, bool) {
	schoolID := r.PathValue("id")
	if schoolID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "school_id is required")
		return identity.Caller{}, "", false
	}

	caller, err := identity.ResolveCaller(h.db, middleware.GetSessionToken(r))
	if errors.Is(err, identity.ErrInvalidToken) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid session token")
		return identity.Caller{}, "", false
	}
	if err != nil {
		slog.Error("failed to resolve caller", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return identity.Caller{}, "", false
	}

	callerSchoolID, err := caller.RequireSchool()
	if errors.Is(err, identity.ErrUnlinked) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "You are not linked to a school")
		return identity.Caller{}, "", false
	}

	if callerSchoolID != schoolID {
		middleware.ErrorResponse(w, http.StatusForbidden, "You can only take part in your own school's election")
		return identity.Caller{}, "", false
	}

	return caller, schoolID, true
}

// DeclareCandidacy handles POST /schools/{id}/candidates
func (h *ElectionHandler) DeclareCandidacy(w http.ResponseWriter, r *http.Request) {
	caller, schoolID, ok := h.resolveSchoolCaller(w, r)
	if !ok {
		return
	}

	var req models.DeclareCandidacyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.DisplayName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "display_name is required")
		return
	}

	cand, err := h.engine.DeclareCandidacy(election.CandidacyInput{
		SchoolID:    schoolID,
		UserID:      caller.UserID,
		DisplayName: req.DisplayName,
		ClassLabel:  req.ClassLabel,
		PhotoURL:    req.PhotoURL,
	})

	if errors.Is(err, election.ErrAlreadyCandidate) {
		middleware.ErrorResponse(w, http.StatusConflict, "You have already declared candidacy")
		return
	}
	if err != nil {
		slog.Error("failed to declare candidacy", "error", err, "school_id", schoolID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to declare candidacy")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.DeclareCandidacyResponse{
		CandidateID: cand.ID,
	})
}

// CastVote handles POST /schools/{id}/votes
func (h *ElectionHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	caller, schoolID, ok := h.resolveSchoolCaller(w, r)
	if !ok {
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.CandidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)
	userAgent := r.UserAgent()

	vote, err := h.engine.CastVote(election.VoteInput{
		SchoolID:    schoolID,
		VoterUserID: caller.UserID,
		CandidateID: req.CandidateID,
		IPHash:      &ipHash,
		UserAgent:   &userAgent,
	})

	switch {
	case errors.Is(err, election.ErrCandidateNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	case errors.Is(err, election.ErrCandidateMismatch):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Candidate is not from your school")
		return
	case errors.Is(err, election.ErrElectionNotActive):
		middleware.ErrorResponse(w, http.StatusConflict, "No active election accepting votes")
		return
	case errors.Is(err, election.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, "You have already voted in this election")
		return
	case err != nil:
		slog.Error("failed to cast vote", "error", err, "school_id", schoolID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		VoteID:  vote.ID,
		Message: "Vote recorded",
	})
}

// GetStatus handles GET /schools/{id}/election
func (h *ElectionHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	caller, schoolID, ok := h.resolveSchoolCaller(w, r)
	if !ok {
		return
	}

	status, err := h.engine.Status(schoolID, caller.UserID, time.Now().UTC())
	if errors.Is(err, election.ErrSchoolNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "School not found")
		return
	}
	if err != nil {
		slog.Error("failed to project election status", "error", err, "school_id", schoolID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, status)
}
