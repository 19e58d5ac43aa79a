// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/campushq/schoolvote/auth"
	"github.com/campushq/schoolvote/cliparse"
	"github.com/campushq/schoolvote/identity"
	"github.com/campushq/schoolvote/middleware"
	"github.com/campushq/schoolvote/models"
)

type UserHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewUserHandler(db *sql.DB, cfg cliparse.Config) *UserHandler {
	return &UserHandler{db: db, cfg: cfg}
}

// Register handles POST /users/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.DisplayName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "display_name is required")
		return
	}
	if len(req.DisplayName) < 2 || len(req.DisplayName) > 100 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "display_name must be 2-100 characters")
		return
	}
	if req.SchoolID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "school_id is required")
		return
	}

	// The school link must point at a real school
	var schoolExists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM school WHERE id = $1)
	`, req.SchoolID).Scan(&schoolExists)

	if err != nil {
		slog.Error("failed to query school", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !schoolExists {
		middleware.ErrorResponse(w, http.StatusNotFound, "School not found")
		return
	}

	sessionToken, err := auth.GenerateSessionToken()
	if err != nil {
		slog.Error("failed to generate session token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	userID := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO app_user (id, session_token, display_name, class_label, photo_url, school_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, userID, sessionToken, req.DisplayName, req.ClassLabel, req.PhotoURL, req.SchoolID, time.Now().UTC())

	if err != nil {
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	slog.Info("user registered", "user_id", userID, "school_id", req.SchoolID)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterUserResponse{
		UserID:       userID,
		SessionToken: sessionToken,
	})
}

// GetMe handles GET /users/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	caller, err := identity.ResolveCaller(h.db, middleware.GetSessionToken(r))
	if errors.Is(err, identity.ErrInvalidToken) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid session token")
		return
	}
	if err != nil {
		slog.Error("failed to resolve caller", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var user models.User
	err = h.db.QueryRow(`
		SELECT id, display_name, class_label, photo_url, school_id, created_at
		FROM app_user
		WHERE id = $1
	`, caller.UserID).Scan(
		&user.ID, &user.DisplayName, &user.ClassLabel,
		&user.PhotoURL, &user.SchoolID, &user.CreatedAt,
	)

	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, user)
}
