// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/campushq/schoolvote/auth"
	"github.com/campushq/schoolvote/cliparse"
	"github.com/campushq/schoolvote/db"
)

// SetupTestDB creates a fresh in-memory database with the full schema.
// Each test gets its own database; shared cache keeps it alive across
// connections within the test, and a single connection avoids sqlite
// write contention.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:               4280,
		DatabaseType:       "sqlite",
		DatabaseURL:        ":memory:",
		AdminToken:         "test-admin-token",
		IPHashSalt:         "test-ip-salt",
		CandidateThreshold: cliparse.DefaultCandidateThreshold,
		VotingWindow:       cliparse.DefaultVotingWindow,
	}
}

// CreateTestCity inserts a city and returns its ID
func CreateTestCity(t *testing.T, conn *sql.DB, name string) string {
	t.Helper()

	cityID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO city (id, name, created_at)
		VALUES ($1, $2, $3)
	`, cityID, name, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test city: %v", err)
	}

	return cityID
}

// CreateTestSchool inserts a school in a city and returns its ID
func CreateTestSchool(t *testing.T, conn *sql.DB, cityID, name string) string {
	t.Helper()

	schoolID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO school (id, city_id, name, created_at)
		VALUES ($1, $2, $3, $4)
	`, schoolID, cityID, name, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test school: %v", err)
	}

	return schoolID
}

// CreateTestUser inserts a user linked to a school and returns the user
// ID and session token
func CreateTestUser(t *testing.T, conn *sql.DB, schoolID, displayName string) (userID, sessionToken string) {
	t.Helper()

	userID = uuid.NewString()
	sessionToken, _ = auth.GenerateSessionToken()
	_, err := conn.Exec(`
		INSERT INTO app_user (id, school_id, display_name, session_token, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, userID, schoolID, displayName, sessionToken, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID, sessionToken
}

// AddTestCandidate inserts a candidacy for a user and returns the
// candidate ID. createdAt controls tie-break order in tests.
func AddTestCandidate(t *testing.T, conn *sql.DB, schoolID, userID, displayName string, createdAt time.Time) string {
	t.Helper()

	candidateID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO candidate (id, school_id, user_id, display_name, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, candidateID, schoolID, userID, displayName, createdAt)
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return candidateID
}

// CreateTestElection inserts an election row directly and returns its ID.
// status should be "active" or "finished".
func CreateTestElection(t *testing.T, conn *sql.DB, schoolID, status string, startsAt, endsAt time.Time) string {
	t.Helper()

	electionID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO election (id, school_id, status, starts_at, ends_at)
		VALUES ($1, $2, $3, $4, $5)
	`, electionID, schoolID, status, startsAt, endsAt)
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}

	return electionID
}

// CastTestVote inserts a vote row directly and returns its ID
func CastTestVote(t *testing.T, conn *sql.DB, electionID, voterUserID, candidateID string) string {
	t.Helper()

	voteID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO vote (id, election_id, voter_user_id, candidate_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, voteID, electionID, voterUserID, candidateID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	return voteID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
