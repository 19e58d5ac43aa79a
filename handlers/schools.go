// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/campushq/schoolvote/auth"
	"github.com/campushq/schoolvote/cliparse"
	"github.com/campushq/schoolvote/db"
	"github.com/campushq/schoolvote/middleware"
	"github.com/campushq/schoolvote/models"
)

// DirectoryHandler serves the city/school directory. Writes are gated by
// the service admin token; reads are public so the onboarding screens can
// list cities and schools before the caller has a session.
type DirectoryHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewDirectoryHandler(db *sql.DB, cfg cliparse.Config) *DirectoryHandler {
	return &DirectoryHandler{db: db, cfg: cfg}
}

// ListCities handles GET /cities
func (h *DirectoryHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, name, created_at FROM city ORDER BY name
	`)
	if err != nil {
		slog.Error("failed to query cities", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	cities := []models.City{}
	for rows.Next() {
		var c models.City
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			slog.Error("failed to scan city", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		cities = append(cities, c)
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"cities": cities,
	})
}

// CreateCity handles POST /cities
func (h *DirectoryHandler) CreateCity(w http.ResponseWriter, r *http.Request) {
	if err := auth.ValidateAdminToken(middleware.GetAdminToken(r), h.cfg.AdminToken); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin token")
		return
	}

	var req models.CreateCityRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	cityID := uuid.NewString()
	_, err := h.db.Exec(`
		INSERT INTO city (id, name, created_at)
		VALUES ($1, $2, $3)
	`, cityID, req.Name, time.Now().UTC())

	if db.IsUniqueViolation(err) {
		middleware.ErrorResponse(w, http.StatusConflict, "City already exists")
		return
	}
	if err != nil {
		slog.Error("failed to insert city", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create city")
		return
	}

	slog.Info("city created", "city_id", cityID, "name", req.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateCityResponse{
		CityID: cityID,
	})
}

// ListSchools handles GET /schools?city_id=...
func (h *DirectoryHandler) ListSchools(w http.ResponseWriter, r *http.Request) {
	cityID := r.URL.Query().Get("city_id")
	if cityID == "" {
		middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
			"schools": []models.School{},
		})
		return
	}

	rows, err := h.db.Query(`
		SELECT id, city_id, name, address, admin_user_id, created_at
		FROM school
		WHERE city_id = $1
		ORDER BY name
	`, cityID)
	if err != nil {
		slog.Error("failed to query schools", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	schools := []models.School{}
	for rows.Next() {
		var s models.School
		if err := rows.Scan(&s.ID, &s.CityID, &s.Name, &s.Address, &s.AdminUserID, &s.CreatedAt); err != nil {
			slog.Error("failed to scan school", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		schools = append(schools, s)
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"schools": schools,
	})
}

// GetSchool handles GET /schools/{id}
func (h *DirectoryHandler) GetSchool(w http.ResponseWriter, r *http.Request) {
	schoolID := r.PathValue("id")
	if schoolID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "school_id is required")
		return
	}

	var s models.School
	err := h.db.QueryRow(`
		SELECT id, city_id, name, address, admin_user_id, created_at
		FROM school
		WHERE id = $1
	`, schoolID).Scan(&s.ID, &s.CityID, &s.Name, &s.Address, &s.AdminUserID, &s.CreatedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "School not found")
		return
	}
	if err != nil {
		slog.Error("failed to query school", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, s)
}

// CreateSchool handles POST /schools
func (h *DirectoryHandler) CreateSchool(w http.ResponseWriter, r *http.Request) {
	if err := auth.ValidateAdminToken(middleware.GetAdminToken(r), h.cfg.AdminToken); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin token")
		return
	}

	var req models.CreateSchoolRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.CityID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "city_id is required")
		return
	}

	var cityExists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM city WHERE id = $1)
	`, req.CityID).Scan(&cityExists)

	if err != nil {
		slog.Error("failed to query city", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !cityExists {
		middleware.ErrorResponse(w, http.StatusNotFound, "City not found")
		return
	}

	schoolID := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO school (id, city_id, name, address, admin_user_id, created_at)
		VALUES ($1, $2, $3, $4, NULL, $5)
	`, schoolID, req.CityID, req.Name, req.Address, time.Now().UTC())

	if err != nil {
		slog.Error("failed to insert school", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create school")
		return
	}

	slog.Info("school created", "school_id", schoolID, "city_id", req.CityID, "name", req.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSchoolResponse{
		SchoolID: schoolID,
	})
}
