// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"errors"
	"testing"

	"github.com/campushq/schoolvote/testutil"
)

func TestResolveCaller(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cityID := testutil.CreateTestCity(t, db, "Springfield")
	schoolID := testutil.CreateTestSchool(t, db, cityID, "Springfield High")
	userID, sessionToken := testutil.CreateTestUser(t, db, schoolID, "Alice")

	t.Run("valid token", func(t *testing.T) {
		caller, err := ResolveCaller(db, sessionToken)
		if err != nil {
			t.Fatalf("ResolveCaller() error = %v", err)
		}
		if caller.UserID != userID {
			t.Errorf("Expected user %s, got %s", userID, caller.UserID)
		}
		if caller.SchoolID == nil || *caller.SchoolID != schoolID {
			t.Error("Expected caller to carry the school link")
		}
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := ResolveCaller(db, "")
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := ResolveCaller(db, "no-such-token")
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestRequireSchool(t *testing.T) {
	schoolID := "school-123"

	t.Run("linked caller", func(t *testing.T) {
		c := Caller{UserID: "user-1", SchoolID: &schoolID}
		got, err := c.RequireSchool()
		if err != nil {
			t.Fatalf("RequireSchool() error = %v", err)
		}
		if got != schoolID {
			t.Errorf("Expected %s, got %s", schoolID, got)
		}
	})

	t.Run("unlinked caller", func(t *testing.T) {
		c := Caller{UserID: "user-1"}
		_, err := c.RequireSchool()
		if !errors.Is(err, ErrUnlinked) {
			t.Errorf("Expected ErrUnlinked, got %v", err)
		}
	})

	t.Run("empty school id", func(t *testing.T) {
		empty := ""
		c := Caller{UserID: "user-1", SchoolID: &empty}
		_, err := c.RequireSchool()
		if !errors.Is(err, ErrUnlinked) {
			t.Errorf("Expected ErrUnlinked, got %v", err)
		}
	})
}
