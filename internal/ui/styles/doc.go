// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the customchat TUI.
//
// All colors use Lip Gloss AdaptiveColor so the palette follows the
// terminal's light or dark background automatically. A single Theme value
// is built at startup and threaded through every view.
package styles
