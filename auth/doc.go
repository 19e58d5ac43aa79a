// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token generation and validation.

# Session Tokens

GenerateSessionToken creates a random 192-bit token issued at registration:

	token, err := auth.GenerateSessionToken()

The token is stored on the user row; identity.ResolveCaller maps it back
to a user on every request.

# Admin Token

ValidateAdminToken compares the X-Admin-Token header against the configured
secret in constant time:

	if err := auth.ValidateAdminToken(header, cfg.AdminToken); err != nil {
		// 401
	}

# IP Hashing

HashIP produces a salted, truncated HMAC of a voter's IP for abuse
deduplication without storing raw addresses:

	hash := auth.HashIP(clientIP, cfg.IPHashSalt)
*/
package auth
