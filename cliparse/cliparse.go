package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"
)

// Defaults for the election mechanics. Exposed as flags/env so deployments
// can tune how many candidates open an election and how long voting stays
// open.
const (
	DefaultCandidateThreshold = 6
	DefaultVotingWindow       = 24 * time.Hour
)

type Config struct {
	Port               int
	DatabaseURL        string
	DatabaseType       string
	AdminToken         string
	IPHashSalt         string
	CandidateThreshold int
	VotingWindow       time.Duration
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var votingWindow string

	fs := flag.NewFlagSet("schoolvote", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Election mechanics
	fs.IntVar(&cfg.CandidateThreshold, "threshold", 0, "Candidates required to open an election")
	fs.StringVar(&votingWindow, "voting-window", "", "Voting window duration (e.g. 24h)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminToken, "admin-token", "", "Directory admin token (prefer env)")
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "Vote IP hash salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 4280 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.CandidateThreshold == 0 {
		if thresholdStr := os.Getenv("CANDIDATE_THRESHOLD"); thresholdStr != "" {
			threshold, err := strconv.Atoi(thresholdStr)
			if err != nil {
				return Config{}, errors.New("invalid CANDIDATE_THRESHOLD env variable")
			}
			cfg.CandidateThreshold = threshold
		} else {
			cfg.CandidateThreshold = DefaultCandidateThreshold
		}
	}
	if cfg.CandidateThreshold < 1 {
		return Config{}, errors.New("candidate threshold must be at least 1")
	}

	if votingWindow == "" {
		votingWindow = os.Getenv("VOTING_WINDOW")
	}
	if votingWindow == "" {
		cfg.VotingWindow = DefaultVotingWindow
	} else {
		window, err := time.ParseDuration(votingWindow)
		if err != nil || window <= 0 {
			return Config{}, errors.New("invalid voting window duration")
		}
		cfg.VotingWindow = window
	}

	// Secrets - MUST be provided
	if cfg.AdminToken == "" {
		cfg.AdminToken = os.Getenv("ADMIN_TOKEN")
	}
	if cfg.AdminToken == "" {
		return Config{}, errors.New("ADMIN_TOKEN required")
	}

	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}
	if cfg.IPHashSalt == "" {
		return Config{}, errors.New("IP_HASH_SALT required")
	}

	return cfg, nil
}
