// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"database/sql"
	"errors"
	"fmt"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrUnlinked     = errors.New("user is not linked to a school")
)

// Caller is a resolved request identity: a stable user id plus the school
// the user currently belongs to, if any.
type Caller struct {
	UserID   string
	SchoolID *string
}

// ResolveCaller maps a session token to a caller. Fails with
// ErrInvalidToken when the token is missing or unknown.
func ResolveCaller(db *sql.DB, token string) (Caller, error) {
	if token == "" {
		return Caller{}, ErrInvalidToken
	}

	var c Caller
	err := db.QueryRow(`
		SELECT id, school_id FROM app_user WHERE session_token = $1
	`, token).Scan(&c.UserID, &c.SchoolID)

	if err == sql.ErrNoRows {
		return Caller{}, ErrInvalidToken
	}
	if err != nil {
		return Caller{}, fmt.Errorf("failed to resolve caller: %w", err)
	}

	return c, nil
}

// RequireSchool returns the caller's school id, failing with ErrUnlinked
// for users who registered but lost their school link.
func (c Caller) RequireSchool() (string, error) {
	if c.SchoolID == nil || *c.SchoolID == "" {
		return "", ErrUnlinked
	}
	return *c.SchoolID, nil
}
