// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the schoolvote API.

# Routes

NewRouter builds a *http.ServeMux using Go 1.22+ method routing:

	mux := router.NewRouter(db, cfg)

Onboarding:

	POST /users/register
	GET  /users/me

Directory:

	GET  /cities
	POST /cities            (X-Admin-Token)
	GET  /schools?city_id=
	GET  /schools/{id}
	POST /schools           (X-Admin-Token)

Election:

	POST /schools/{id}/candidates
	POST /schools/{id}/votes
	GET  /schools/{id}/election

Utility:

	GET /health
	GET /

All routes except /health and / are wrapped with middleware.WithLogging.
CORS is applied to the whole mux in main.
*/
package router
