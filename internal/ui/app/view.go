// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/customchat-tui/internal/util"
)

const sidebarWidth = 22

// View renders the sidebar next to the active view.
func (m Model) View() string {
	if m.width > 0 && m.width < 60 {
		// Narrow terminals drop the sidebar.
		return m.activeView()
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderSidebar(),
		m.theme.Container.Render(m.activeView()),
	)
}

func (m Model) activeView() string {
	switch m.active {
	case ViewLogin:
		return m.login.View()
	case ViewPosts:
		return m.posts.View()
	case ViewProfile:
		return m.profile.View()
	case ViewAdmin:
		return m.admin.View()
	default:
		return m.chat.View()
	}
}

func (m Model) renderSidebar() string {
	var b strings.Builder

	b.WriteString(m.theme.SidebarBrand.Render("CustomChat"))
	b.WriteString("\n\n")

	if m.identity != nil {
		name := util.TruncateWidth(m.identity.DisplayName, sidebarWidth-4)
		b.WriteString(m.theme.SidebarIdentity.Render(name))
		b.WriteString("\n")
		b.WriteString(m.theme.SidebarMuted.Render(m.identity.Role))
	} else {
		b.WriteString(m.theme.SidebarMuted.Render("not signed in"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.menuItem("Chat", m.active == ViewChat))
	b.WriteString("\n")
	if m.identity != nil {
		b.WriteString(m.menuItem("Board", m.active == ViewPosts))
		b.WriteString("\n")
		b.WriteString(m.menuItem("My page", m.active == ViewProfile))
		b.WriteString("\n")
	}
	if m.identity.IsAdmin() {
		b.WriteString(m.menuItem("Admin", m.active == ViewAdmin))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.identity != nil {
		b.WriteString(m.theme.ShortcutKey.Render("^B") + m.theme.ShortcutDesc.Render(" board"))
		b.WriteString("\n")
		b.WriteString(m.theme.ShortcutKey.Render("^P") + m.theme.ShortcutDesc.Render(" my page"))
		b.WriteString("\n")
		b.WriteString(m.theme.ShortcutKey.Render("^L") + m.theme.ShortcutDesc.Render(" logout"))
	} else {
		b.WriteString(m.theme.SidebarMuted.Render("sign in to chat"))
	}
	if m.identity.IsAdmin() {
		b.WriteString("\n")
		b.WriteString(m.theme.ShortcutKey.Render("^A") + m.theme.ShortcutDesc.Render(" admin"))
	}

	height := m.height
	if height <= 0 {
		height = 24
	}
	return m.theme.Sidebar.Width(sidebarWidth).Height(height - 2).Render(b.String())
}

func (m Model) menuItem(label string, active bool) string {
	label = util.PadRight(label, sidebarWidth-8)
	if active {
		return m.theme.SidebarActive.Render("> " + label)
	}
	return m.theme.SidebarItem.Render("  " + label)
}
