// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package identity resolves request credentials to users and schools.

# Resolving a Caller

Every authenticated endpoint passes the X-Session-Token header through
ResolveCaller:

	caller, err := identity.ResolveCaller(db, middleware.GetSessionToken(r))

ResolveCaller fails with ErrInvalidToken for missing or unknown tokens.

# School Membership

Election operations additionally require a school link:

	schoolID, err := caller.RequireSchool()

RequireSchool fails with ErrUnlinked when the user has no current school,
which handlers surface as an actionable 401.
*/
package identity
