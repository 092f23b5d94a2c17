// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package profile provides the my-page view: the signed-in user's
// account record as the backend stores it, fetched fresh on every
// visit so a stale session never shows another user's data.
package profile

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/customchat-tui/internal/api"
	"github.com/jeranaias/customchat-tui/internal/ui/styles"
)

// loadedMsg carries the account record.
type loadedMsg struct {
	account *api.Account
	err     error
}

// Source is the backend surface the view needs. *api.Client satisfies it.
type Source interface {
	MyPage(ctx context.Context) (*api.Account, error)
}

// Model is the Bubble Tea model for the profile view.
type Model struct {
	theme  *styles.Theme
	client Source

	account *api.Account
	busy    bool
	errText string

	width  int
	height int
}

// New creates the profile view.
func New(theme *styles.Theme, client Source) Model {
	return Model{theme: theme, client: client}
}

// Init triggers the account fetch.
func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// SetSize updates the layout dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the profile view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "R" && !m.busy {
			m.busy = true
			return m, m.loadCmd()
		}

	case loadedMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = api.Detail(msg.err)
			return m, nil
		}
		m.errText = ""
		m.account = msg.account
	}
	return m, nil
}

func (m Model) loadCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		account, err := client.MyPage(context.Background())
		return loadedMsg{account: account, err: err}
	}
}

// View renders the profile view.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.FormTitle.Render("My page"))
	b.WriteString("\n\n")

	switch {
	case m.busy || m.account == nil && m.errText == "":
		b.WriteString(m.theme.FormHint.Render("Loading..."))
	case m.errText != "":
		b.WriteString(m.theme.ErrorText.Render(m.errText))
	default:
		rows := [][2]string{
			{"ID", m.account.ID},
			{"Name", m.account.Name},
			{"Birth date", m.account.BirthDay},
			{"Phone", m.account.Phone},
		}
		for _, row := range rows {
			b.WriteString(m.theme.FormLabel.Render(row[0]))
			b.WriteString(row[1])
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.theme.ShortcutKey.Render("R") + m.theme.ShortcutDesc.Render(" reload"))
	}

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, b.String())
	}
	return b.String()
}
