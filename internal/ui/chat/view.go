// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/customchat-tui/internal/ui/components"
)

// View renders the chat view.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderInput())

	if m.statusErr != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.ErrorText.Render(m.statusErr))
	}

	return b.String()
}

// refreshViewport rebuilds the transcript content and keeps the view
// pinned to the latest message.
func (m *Model) refreshViewport() {
	var sections []string

	for _, msg := range m.transcript.Visible() {
		bubble := components.NewMessageBubble(msg, m.theme, m.markdown)
		bubble.SetWidth(m.contentWidth())
		sections = append(sections, bubble.View())
	}

	// Transient placeholder, shown only while a request is outstanding
	// and never appended to the transcript.
	if m.state == StateSending {
		sections = append(sections, m.wait.View())
	}

	m.viewport.SetContent(strings.Join(sections, "\n\n"))
	m.viewport.GotoBottom()
}

func (m Model) renderInput() string {
	send := m.theme.SendButton.Render("Send")
	if m.state == StateSending {
		send = m.theme.SendDisabled.Render("Send")
	}

	inputWidth := m.contentWidth() - lipgloss.Width(send) - 3
	if inputWidth > 0 {
		m.input.Width = inputWidth
	}

	row := lipgloss.JoinHorizontal(lipgloss.Center, m.input.View(), " ", send)
	return m.theme.InputContainer.Width(m.contentWidth()).Render(row)
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}
