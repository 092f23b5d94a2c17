// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

// =============================================================================
// THREAD ID
// =============================================================================

// ThreadID identifies one backend conversation thread. The wire encoding
// is whatever the backend chose - a JSON number today, possibly a string
// after a migration - so the raw token is kept verbatim and echoed back
// unchanged on subsequent turns. The zero value marshals as null, which
// asks the backend to open a new thread.
type ThreadID struct {
	raw json.RawMessage
}

// IsZero reports whether no thread has been adopted yet.
func (t ThreadID) IsZero() bool {
	return len(t.raw) == 0
}

// String renders the id for display, without JSON quoting. A proper
// JSON string is decoded so escapes and embedded quotes survive; any
// other token (a number, today) renders verbatim.
func (t ThreadID) String() string {
	if t.IsZero() {
		return ""
	}
	var s string
	if err := json.Unmarshal(t.raw, &s); err == nil {
		return s
	}
	return string(t.raw)
}

// MarshalJSON emits the original wire token, or null before the first
// reply arrives.
func (t ThreadID) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return t.raw, nil
}

// UnmarshalJSON keeps the wire token verbatim; JSON null stays zero.
func (t *ThreadID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		t.raw = nil
		return nil
	}
	t.raw = append(json.RawMessage(nil), data...)
	return nil
}

// =============================================================================
// CHAT TURN
// =============================================================================

// ChatTurn is the backend's reply to one chat exchange.
type ChatTurn struct {
	ThreadID ThreadID `json:"thread_id"`
	Reply    string   `json:"reply"`
}

// Chat sends one message and waits for the generated reply. Unlike the
// other calls this one has no client-level timeout - reply generation is
// legitimately slow - so the caller's context is the only bound.
func (c *Client) Chat(ctx context.Context, message string, thread ThreadID) (*ChatTurn, error) {
	req := struct {
		Message  string   `json:"message"`
		ThreadID ThreadID `json:"thread_id"`
	}{Message: message, ThreadID: thread}

	var out ChatTurn
	if err := c.doWith(ctx, c.chatHTTP, http.MethodPost, "/api/chat", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
