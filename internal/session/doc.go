// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session is the single authoritative read path for "is a user
// logged in, and as whom".
//
// Identity is derived, not stored: the source of truth is an opaque bearer
// token persisted in a small key-value Store alongside three auxiliary
// fields (display name, user id, cached role). DecodeIdentity re-derives
// the identity claim from the token alone; the auxiliary fields only fill
// gaps the token cannot (the display name is never embedded in it).
//
// Because every view holds its own cached copy of the identity, the Manager
// broadcasts a zero-payload change notification on every login and logout.
// Subscribers must re-read Current() on notification rather than trusting
// pushed data - a redundant notification is therefore harmless.
package session
