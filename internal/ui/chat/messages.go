// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/customchat-tui/internal/api"
)

// =============================================================================
// BUBBLE TEA MESSAGES
// =============================================================================

// chatReplyMsg delivers a successful backend reply.
type chatReplyMsg struct {
	Turn *api.ChatTurn
}

// chatFailedMsg signals that the outstanding request failed, either in
// transport or with a non-success status.
type chatFailedMsg struct {
	Err error
}

// tickMsg advances the elapsed counter once per second. Gen ties the tick
// to the request that scheduled it so a tick arriving after the request
// has settled is discarded instead of resurrecting a cleared timer.
type tickMsg struct {
	Gen int
}

// apologyText is appended to the transcript when a request fails.
const apologyText = "Something went wrong. Please try again in a moment."
