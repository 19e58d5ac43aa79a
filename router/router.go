// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/campushq/schoolvote/cliparse"
	"github.com/campushq/schoolvote/handlers"
	"github.com/campushq/schoolvote/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(db, cfg)
	directoryHandler := handlers.NewDirectoryHandler(db, cfg)
	electionHandler := handlers.NewElectionHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Onboarding
	mux.HandleFunc("POST /users/register", middleware.WithLogging(userHandler.Register))
	mux.HandleFunc("GET /users/me", middleware.WithLogging(userHandler.GetMe))

	// City/school directory (writes gated by X-Admin-Token)
	mux.HandleFunc("GET /cities", middleware.WithLogging(directoryHandler.ListCities))
	mux.HandleFunc("POST /cities", middleware.WithLogging(directoryHandler.CreateCity))
	mux.HandleFunc("GET /schools", middleware.WithLogging(directoryHandler.ListSchools))
	mux.HandleFunc("GET /schools/{id}", middleware.WithLogging(directoryHandler.GetSchool))
	mux.HandleFunc("POST /schools", middleware.WithLogging(directoryHandler.CreateSchool))

	// Election operations (scoped to the caller's own school)
	mux.HandleFunc("POST /schools/{id}/candidates", middleware.WithLogging(electionHandler.DeclareCandidacy))
	mux.HandleFunc("POST /schools/{id}/votes", middleware.WithLogging(electionHandler.CastVote))
	mux.HandleFunc("GET /schools/{id}/election", middleware.WithLogging(electionHandler.GetStatus))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("schoolvote API v1"))
	})

	return mux
}
