// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterUserRequest: display_name, class_label, photo_url, school_id
  - CreateCityRequest: name
  - CreateSchoolRequest: city_id, name, address
  - DeclareCandidacyRequest: display_name, class_label, photo_url
  - CastVoteRequest: candidate_id

# Response Types

Types for JSON responses:

  - RegisterUserResponse: user_id, session_token
  - CreateCityResponse: city_id
  - CreateSchoolResponse: school_id
  - DeclareCandidacyResponse: candidate_id
  - CastVoteResponse: vote_id, message
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - City: directory entry
  - School: school metadata plus the admin seat (admin_user_id)
  - User: registered member with their school link and session token
  - Candidate: a user's declared candidacy for a school's admin seat
  - Election: one voting round with lifecycle state and winner
  - Vote: a single immutable ballot

# Status Projection

The election screen is served from:

  - ElectionStatus: election, candidate standings, caller's vote, admin flag
  - CandidateStanding: candidate plus live vote count

# Constants

Election status values:

	ElectionActive   = "active"
	ElectionFinished = "finished"
*/
package models
