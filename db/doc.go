// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connection and schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - city: City directory
  - school: School metadata and the admin seat (admin_user_id)
  - app_user: Registered members with session tokens
  - candidate: Candidacy declarations per school
  - election: Voting rounds and lifecycle state
  - vote: One ballot per voter per election

# Relationships

	city 1──* school
	school 1──* app_user
	school 1──* candidate
	school 1──* election
	election 1──* vote

All foreign keys use ON DELETE CASCADE (app_user.school_id uses SET NULL
so that removing a school keeps its members).

# Constraints

Correctness under concurrent requests comes from the schema, not from
application-level pre-checks:

  - candidate UNIQUE(school_id, user_id): one candidacy per user per school
  - election partial unique index on school_id WHERE status = 'active':
    at most one active election per school
  - vote UNIQUE(election_id, voter_user_id): one ballot per voter

Handlers and the election engine detect violations with IsUniqueViolation
and map them to domain errors.
*/
package db
