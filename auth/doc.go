// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session tokens, password hashing and ID generation.

# Session Tokens

Session tokens are HS256 JWTs carrying the user's role:

	token, err := auth.IssueSessionToken(secret, models.RoleAdmin, 24*time.Hour)
	claims, err := auth.ParseSessionToken(secret, token)

ParseSessionToken checks the signature, the issuer and the expiry. Any
failure wraps ErrInvalidToken, so callers can treat a bad token exactly like
a missing one. A zero ttl issues a token that never expires.

# Passwords

Credentials are stored as bcrypt hashes:

	hash, err := auth.HashPassword("admin123")
	err = auth.CheckPassword(hash, "admin123") // nil or ErrInvalidPassword

# ID Generation

Random hex IDs, used as token IDs:

	id, err := auth.GenerateID(12)  // 24 hex characters
*/
package auth
