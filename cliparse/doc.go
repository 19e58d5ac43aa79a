// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 4280)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - AdminToken: Secret for directory admin endpoints (required)
  - IPHashSalt: Secret for hashing voter IPs (required)
  - CandidateThreshold: Candidates required to open an election (default: 6)
  - VotingWindow: How long an election accepts votes (default: 24h)

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	--threshold      Candidate threshold
	--voting-window  Voting window duration
	--admin-token    Directory admin token
	--ip-salt        Vote IP hash salt

# Environment Variables

Flags fall back to environment variables:

	PORT                → -p
	DATABASE_URL        → -d
	DATABASE_TYPE       → -t
	CANDIDATE_THRESHOLD → --threshold
	VOTING_WINDOW       → --voting-window
	ADMIN_TOKEN         → --admin-token
	IP_HASH_SALT        → --ip-salt

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing or malformed:

  - DATABASE_URL must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - ADMIN_TOKEN must be provided
  - IP_HASH_SALT must be provided
  - CANDIDATE_THRESHOLD must be a positive integer
  - VOTING_WINDOW must parse as a positive Go duration
*/
package cliparse
