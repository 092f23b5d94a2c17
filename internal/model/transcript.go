// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript holds one conversation's messages in insertion order.
//
// The transcript is append-only: messages are never edited or removed for
// the lifetime of the conversation, and it is never persisted - it dies
// with the chat view.
type Transcript struct {
	messages []Message
	nextID   int64
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{nextID: 1}
}

// Append adds a message with a freshly minted id and returns it.
func (t *Transcript) Append(role Role, content string) Message {
	msg := Message{
		ID:        t.nextID,
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
	t.nextID++
	t.messages = append(t.messages, msg)
	return msg
}

// Len returns the number of messages, including hidden system messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Messages returns a copy of all messages in insertion order.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Visible returns a copy of the renderable messages in insertion order,
// skipping system-role entries.
func (t *Transcript) Visible() []Message {
	out := make([]Message, 0, len(t.messages))
	for _, m := range t.messages {
		if m.Role.Visible() {
			out = append(out, m)
		}
	}
	return out
}

// Last returns the most recent message and true, or a zero Message and
// false when the transcript is empty.
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}
