// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election implements the school-admin election engine.

# Lifecycle

Elections move through two states, with no way back:

	(none) → active → finished

A school's election opens automatically when its candidate count reaches
the configured threshold, stays open for the configured voting window, and
is resolved lazily by the first status read after the deadline. There is no
background scheduler: a school nobody queries keeps an expired election
formally active until the next read.

# Engine

The engine holds a database handle and the two election knobs:

	engine := election.NewEngine(db, cfg.CandidateThreshold, cfg.VotingWindow)

Operations:

  - DeclareCandidacy: record a candidacy, open an election at the threshold
  - OpenElection: conditional insert guarded by the active-election index
  - CastVote: append one immutable ballot to the ledger
  - Resolve: tally, transition to finished, appoint the school admin
  - Status: assemble the caller-facing projection (resolving lazily first)

# Concurrency

The engine keeps no in-process state and takes no locks. Each guarantee is
a schema constraint or a conditional update:

  - one active election per school: partial unique index, losers of a
    concurrent open observe a constraint violation and no-op
  - one ballot per voter: UNIQUE(election_id, voter_user_id), a duplicate
    cast fails with ErrAlreadyVoted whatever the interleaving
  - single resolution: UPDATE ... WHERE status = 'active' is the
    mutual-exclusion point; losers re-read the finished row, so the admin
    side effect applies exactly once

# Tie-break

The plurality winner is chosen by an explicit scan over candidates in
creation order with a strictly-greater comparison, so ties resolve to the
earliest-declared candidate. Zero ballots finish the election with no
winner and leave the admin seat untouched.
*/
package election
