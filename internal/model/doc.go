// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript.
//
// # Key Types
//
//   - Transcript: Append-only container for one conversation's messages
//   - Message: Single message with id, role, and content
//   - Role: Message role enumeration (user, assistant, system)
//   - DurationHistory: Bounded FIFO of past round-trip times, feeding the
//     ETA estimate shown while a reply is being generated
//
// # Usage
//
// Build a transcript and estimate the next reply time:
//
//	tr := model.NewTranscript()
//	tr.Append(model.RoleUser, "Hello!")
//
//	hist := model.NewDurationHistory()
//	hist.Record(9)
//	eta := hist.Estimate() // seconds
package model
