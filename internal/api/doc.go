// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the HTTP client for the customchat backend.
//
// The backend is an opaque request/response contract: login and signup,
// chat turns, posts and comments, and the admin user table. Protected
// requests carry an Authorization bearer header sourced from the session
// manager; when any of them comes back 401 the client forces a logout
// before surfacing the error, so gated UI reverts through the normal
// identity-change broadcast.
//
// Error handling follows a small sentinel taxonomy (ErrUnauthorized,
// ErrForbidden, ErrNotFound, ErrServer) with the backend's human-readable
// "detail" message preserved for display.
package api
