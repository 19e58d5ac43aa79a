// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the schoolvote API server.

Schoolvote is a community service for schools whose admin seat is filled
by peer election: once enough members declare candidacy, a time-boxed
election opens automatically, members cast one vote each, and the first
status read after the deadline tallies the ballots and appoints the
winner as school admin.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 4280 -d "file:schoolvote.db" -t sqlite

A .env file in the working directory is loaded automatically.

# Configuration

Required settings:

  - DATABASE_URL (-d): Database connection string
  - ADMIN_TOKEN (--admin-token): Secret for directory admin endpoints
  - IP_HASH_SALT (--ip-salt): Secret for vote IP hashing

Optional settings:

  - PORT (-p): Server port (default: 4280)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - CANDIDATE_THRESHOLD (--threshold): Candidates that open an election (default: 6)
  - VOTING_WINDOW (--voting-window): Election duration (default: 24h)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - election: Core election engine (lifecycle, ledger, tally, projection)
  - handlers: HTTP request handlers (users, directory, election)
  - identity: Session token to user/school resolution
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - auth: Token generation and IP hashing
  - db: Connection, schema creation, constraint-violation detection
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
