// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Open connects to the configured database. dbType is "postgres" or
// "sqlite"; both drivers accept the $1 placeholder style used throughout.
func Open(dbType, url string) (*sql.DB, error) {
	switch dbType {
	case "postgres":
		return sql.Open("postgres", url)
	case "sqlite":
		return sql.Open("sqlite", url)
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// IsUniqueViolation reports whether err is a uniqueness-constraint failure
// from either supported driver. The constraints are the correctness
// mechanism for duplicate votes, duplicate candidacies, and duplicate
// active elections, so callers treat this as a domain signal, not an
// infrastructure failure.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "duplicate key value violates unique constraint") // postgres
}

// All timestamps are written by application code rather than DB-side
// defaults so the schema behaves identically on both drivers.
const schema = `
-- Cities
CREATE TABLE IF NOT EXISTS city (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL
);

-- Schools
CREATE TABLE IF NOT EXISTS school (
    id TEXT PRIMARY KEY,
    city_id TEXT NOT NULL REFERENCES city(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    address TEXT,
    admin_user_id TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_school_city_id ON school(city_id);

-- Users ("app_user" because "user" is reserved in PostgreSQL)
CREATE TABLE IF NOT EXISTS app_user (
    id TEXT PRIMARY KEY,
    session_token TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    class_label TEXT,
    photo_url TEXT,
    school_id TEXT REFERENCES school(id) ON DELETE SET NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_app_user_school_id ON app_user(school_id);

-- Candidates: one declaration per user per school, for the school's lifetime
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    school_id TEXT NOT NULL REFERENCES school(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL REFERENCES app_user(id) ON DELETE CASCADE,
    display_name TEXT NOT NULL,
    class_label TEXT,
    photo_url TEXT,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (school_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_candidate_school_id ON candidate(school_id);

-- Elections: the partial unique index is what guarantees at most one
-- active election per school under concurrent candidacy declarations
CREATE TABLE IF NOT EXISTS election (
    id TEXT PRIMARY KEY,
    school_id TEXT NOT NULL REFERENCES school(id) ON DELETE CASCADE,
    status TEXT NOT NULL CHECK (status IN ('active', 'finished')),
    starts_at TIMESTAMP NOT NULL,
    ends_at TIMESTAMP NOT NULL,
    winner_candidate_id TEXT
);

CREATE INDEX IF NOT EXISTS idx_election_school_id ON election(school_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_election_one_active ON election(school_id) WHERE status = 'active';

-- Votes: one ballot per voter per election, enforced by the constraint
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    voter_user_id TEXT NOT NULL,
    candidate_id TEXT NOT NULL REFERENCES candidate(id) ON DELETE CASCADE,
    ip_hash TEXT,
    user_agent TEXT,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (election_id, voter_user_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_election_id ON vote(election_id);
`
