// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP helpers shared by all handlers.

# Request Logging

WithLogging wraps a handler with start/completion log lines including
method, path, and duration:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, payload)
	middleware.ErrorResponse(w, http.StatusConflict, "You already voted")
	middleware.ParseJSONBody(r, &req)

# Credential Extraction

	token := middleware.GetSessionToken(r) // X-Session-Token
	admin := middleware.GetAdminToken(r)   // X-Admin-Token

# CORS

CORS allows cross-origin requests and handles OPTIONS preflight. Applied
to the whole mux in main.

# Client IP

GetClientIP resolves the caller's address through X-Forwarded-For and
X-Real-IP before falling back to RemoteAddr; used for vote IP hashing.
*/
package middleware
