// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// =============================================================================
// IDENTITY CLAIM
// =============================================================================

// Recognized roles. Anything else the backend might send is passed through
// verbatim; only RoleAdmin unlocks gated UI.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// IdentityClaim is the identity derived from the persisted bearer token.
// A nil claim means "not logged in"; dependent UI must treat the two as
// indistinguishable.
type IdentityClaim struct {
	// SubjectID is the backend user id (stringified).
	SubjectID string

	// Role is "user" or "admin".
	Role string

	// DisplayName is the user-facing name. It is never embedded in the
	// token, so it is only set when filled from the auxiliary store.
	DisplayName string
}

// IsAdmin reports whether the claim carries the admin role.
func (c *IdentityClaim) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

// =============================================================================
// TOKEN DECODING
// =============================================================================

// DecodeIdentity parses the token's payload segment as base64url JSON and
// maps it to an IdentityClaim. The signature is deliberately not verified:
// that is the backend's job, and this client only needs the public claims
// for display gating.
//
// Fails closed: any malformed token (wrong segment count, bad base64,
// invalid JSON) yields nil rather than an error, because at decode time a
// broken token is indistinguishable from "not logged in".
func DecodeIdentity(token string) *IdentityClaim {
	claims := rawClaims(token)
	if claims == nil {
		return nil
	}

	claim := &IdentityClaim{
		SubjectID: subjectFromClaims(claims),
		Role:      RoleUser,
	}
	if role, ok := claims["role"].(string); ok && role != "" {
		claim.Role = role
	}
	return claim
}

// rawClaims returns the token's unverified claims map, or nil when the
// token is empty or does not decode.
func rawClaims(token string) jwt.MapClaims {
	if token == "" {
		return nil
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	return claims
}

// subjectFromClaims extracts the user id, preferring "sub" over the legacy
// "userID" claim, and tolerating both string and numeric encodings.
func subjectFromClaims(claims jwt.MapClaims) string {
	for _, key := range []string{"sub", "userID"} {
		switch v := claims[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatInt(int64(v), 10)
		}
	}
	return ""
}
