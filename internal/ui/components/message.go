// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/customchat-tui/internal/model"
	"github.com/jeranaias/customchat-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders a single transcript message as a chat bubble.
// User messages hug the right edge in blue, assistant messages the left
// edge in neutral gray with markdown rendering.
type MessageBubble struct {
	Message model.Message
	Width   int

	theme    *styles.Theme
	markdown *glamour.TermRenderer
}

// NewMessageBubble creates a bubble for one message. The markdown renderer
// may be nil, in which case assistant content renders as plain text.
func NewMessageBubble(msg model.Message, theme *styles.Theme, markdown *glamour.TermRenderer) *MessageBubble {
	return &MessageBubble{
		Message:  msg,
		Width:    80,
		theme:    theme,
		markdown: markdown,
	}
}

// SetWidth sets the total width available to the bubble.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	switch b.Message.Role {
	case model.RoleUser:
		return b.renderUserBubble()
	case model.RoleAssistant:
		return b.renderAssistantBubble()
	default:
		// System messages are never displayed.
		return ""
	}
}

// ==========================================================================
// USER BUBBLE - Blue tones, right-aligned
// ==========================================================================

func (b *MessageBubble) renderUserBubble() string {
	content := b.Message.Content
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrapped := wordWrap(content, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrapped)+4, b.Width-8)

	bubble := lipgloss.NewStyle().
		Foreground(styles.UserBubbleFg).
		Background(styles.UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.UserBubbleBorder).
		Padding(0, 2).
		Width(contentWidth).
		Render(wrapped)

	label := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true).
		Render(b.Message.Role.DisplayName())

	leftMargin := b.Width - contentWidth - 4
	if leftMargin < 0 {
		leftMargin = 0
	}
	margin := lipgloss.NewStyle().MarginLeft(leftMargin)

	return lipgloss.JoinVertical(lipgloss.Right,
		margin.Render(label),
		margin.Render(bubble),
	)
}

// ==========================================================================
// ASSISTANT BUBBLE - Neutral tones, left-aligned, markdown content
// ==========================================================================

func (b *MessageBubble) renderAssistantBubble() string {
	content := b.Message.Content
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}

	rendered := b.renderMarkdown(content, maxContentWidth)
	// lipgloss.Width is ANSI-aware, which matters for glamour output.
	contentWidth := minInt(lipgloss.Width(rendered)+4, b.Width-8)

	bubble := lipgloss.NewStyle().
		Foreground(styles.AssistantBubbleFg).
		Background(styles.AssistantBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.AssistantBubbleBorder).
		Padding(0, 2).
		Width(contentWidth).
		MarginRight(4).
		Render(rendered)

	label := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true).
		Render(b.Message.Role.DisplayName())

	return lipgloss.JoinVertical(lipgloss.Left, label, bubble)
}

// renderMarkdown renders assistant content through glamour, falling back to
// plain word wrapping when no renderer is available or rendering fails.
func (b *MessageBubble) renderMarkdown(content string, width int) string {
	if b.markdown != nil {
		if out, err := b.markdown.Render(content); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	return wordWrap(content, width)
}

// ==========================================================================
// UTILITY FUNCTIONS
// ==========================================================================

// wordWrap wraps text to fit within the specified display width.
// UNICODE: widths are measured in terminal cells, not runes, so double-width
// Hangul and CJK text wraps correctly.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	for lineIdx, line := range strings.Split(text, "\n") {
		if lineIdx > 0 {
			result.WriteString("\n")
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			if runewidth.StringWidth(current)+1+runewidth.StringWidth(word) <= width {
				current += " " + word
			} else {
				result.WriteString(current)
				result.WriteString("\n")
				current = word
			}
		}
		result.WriteString(current)
	}

	return result.String()
}

// maxLineWidth returns the display width of the widest line.
func maxLineWidth(text string) int {
	maxWidth := 0
	for _, line := range strings.Split(text, "\n") {
		if w := runewidth.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
