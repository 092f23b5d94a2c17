// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view for the customchat TUI.
//
// The view owns one conversation transcript and serializes exactly one
// backend request at a time. While a request is outstanding it shows a
// transient placeholder with a live elapsed counter and an estimate
// derived from the durations of past exchanges. Success appends the
// reply and records a duration sample; failure appends a fixed apology
// and records nothing. Either way the conversation stays usable.
package chat
