// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the customchat
// TUI: message bubbles, the reply wait indicator, and shared text helpers.
package components
