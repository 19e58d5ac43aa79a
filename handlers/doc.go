// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the schoolvote API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - UserHandler: Registration and caller info
  - DirectoryHandler: City/school directory (admin-gated writes)
  - ElectionHandler: Candidacy, voting, and election status

Handlers are created via constructor functions that accept *sql.DB and Config:

	electionHandler := handlers.NewElectionHandler(db, cfg)

ElectionHandler builds an election.Engine internally from the configured
candidate threshold and voting window.

# Onboarding Flow

	GET  /cities              → ListCities
	GET  /schools?city_id=    → ListSchools
	POST /users/register      → Register (returns session_token)
	GET  /users/me            → GetMe

Directory writes (POST /cities, POST /schools) require the X-Admin-Token
header; everything user-facing requires X-Session-Token.

# Election Flow

All election endpoints are scoped to the caller's own school; a path
school that differs from the caller's school is rejected with 403.

	POST /schools/{id}/candidates → DeclareCandidacy
	POST /schools/{id}/votes      → CastVote
	GET  /schools/{id}/election   → GetStatus

The sixth candidacy (by default) opens a 24-hour election. Status reads
resolve expired elections lazily before projecting, so the winner and the
school admin appointment appear on the first read after the deadline.

# Error Mapping

Domain errors from the election engine map onto HTTP statuses:

	ErrAlreadyCandidate  → 409
	ErrAlreadyVoted      → 409
	ErrElectionNotActive → 409
	ErrCandidateMismatch → 400
	ErrCandidateNotFound → 404
	identity.ErrUnlinked → 401

Storage failures are logged and surfaced as generic 500s; the whole
operation is safe to retry.
*/
package handlers
