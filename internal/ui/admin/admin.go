// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package admin provides the user-management table view for the
// customchat TUI. It is reachable only for sessions whose decoded role
// is "admin"; the backend enforces the same rule on every endpoint.
package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/customchat-tui/internal/api"
	"github.com/jeranaias/customchat-tui/internal/ui/styles"
)

const pageSize = 20

// =============================================================================
// MESSAGES
// =============================================================================

// usersLoadedMsg carries one page of the user table.
type usersLoadedMsg struct {
	list *api.AdminUserList
	page int
	err  error
}

// actionDoneMsg signals a completed row action; the table reloads after.
type actionDoneMsg struct {
	err error
}

// Directory is the backend surface the view needs. *api.Client satisfies it.
type Directory interface {
	ListUsers(ctx context.Context, status, q string, page, size int) (*api.AdminUserList, error)
	SoftDeleteUser(ctx context.Context, userID int) (*api.AdminUser, error)
	RestoreUser(ctx context.Context, userID int) (*api.AdminUser, error)
	HardDeleteUser(ctx context.Context, userID int) error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the admin view.
type Model struct {
	theme  *styles.Theme
	client Directory

	table  table.Model
	users  []api.AdminUser
	total  int
	page   int
	filter string

	busy    bool
	errText string

	width  int
	height int
}

// New creates the admin view.
func New(theme *styles.Theme, client Directory) Model {
	columns := []table.Column{
		{Title: "ID", Width: 14},
		{Title: "Name", Width: 14},
		{Title: "Phone", Width: 14},
		{Title: "Role", Width: 6},
		{Title: "Status", Width: 8},
		{Title: "Joined", Width: 10},
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		Bold(true).
		Foreground(styles.TextSecondary).
		BorderBottom(true)
	s.Selected = theme.TableSelected
	tbl.SetStyles(s)

	return Model{
		theme:  theme,
		client: client,
		table:  tbl,
		filter: api.UserFilterActive,
		page:   1,
	}
}

// Init triggers the initial page load.
func (m Model) Init() tea.Cmd {
	return m.loadCmd(1)
}

// SetSize updates the layout dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	h := height - 6
	if h < 5 {
		h = 5
	}
	m.table.SetHeight(h)
}

// Update handles messages for the admin view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case usersLoadedMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = api.Detail(msg.err)
			return m, nil
		}
		m.errText = ""
		m.page = msg.page
		m.total = msg.list.Total
		m.users = msg.list.Items
		m.table.SetRows(m.rows())
		return m, nil

	case actionDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = api.Detail(msg.err)
			return m, nil
		}
		return m, m.loadCmd(m.page)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	switch msg.String() {
	case "f":
		m.filter = nextFilter(m.filter)
		return m, m.loadCmd(1)
	case "R":
		return m, m.loadCmd(m.page)
	case "n":
		if m.page*pageSize < m.total {
			return m, m.loadCmd(m.page + 1)
		}
		return m, nil
	case "p":
		if m.page > 1 {
			return m, m.loadCmd(m.page - 1)
		}
		return m, nil
	case "d":
		return m.action(func(ctx context.Context, id int) error {
			_, err := m.client.SoftDeleteUser(ctx, id)
			return err
		}, false)
	case "r":
		return m.action(func(ctx context.Context, id int) error {
			_, err := m.client.RestoreUser(ctx, id)
			return err
		}, true)
	case "x":
		return m.action(m.client.HardDeleteUser, true)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// =============================================================================
// COMMANDS
// =============================================================================

func (m Model) loadCmd(page int) tea.Cmd {
	client := m.client
	filter := m.filter
	return func() tea.Msg {
		list, err := client.ListUsers(context.Background(), filter, "", page, pageSize)
		return usersLoadedMsg{list: list, page: page, err: err}
	}
}

// action runs fn against the selected row. deletedOnly restricts the
// action to rows already soft-deleted (restore, hard delete).
func (m Model) action(fn func(context.Context, int) error, deletedOnly bool) (Model, tea.Cmd) {
	user, ok := m.selected()
	if !ok || user.IsDeleted != deletedOnly {
		return m, nil
	}

	m.busy = true
	id := user.UserID
	return m, func() tea.Msg {
		return actionDoneMsg{err: fn(context.Background(), id)}
	}
}

func (m Model) selected() (api.AdminUser, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.users) {
		return api.AdminUser{}, false
	}
	return m.users[idx], true
}

func nextFilter(f string) string {
	switch f {
	case api.UserFilterActive:
		return api.UserFilterDeleted
	case api.UserFilterDeleted:
		return api.UserFilterAll
	default:
		return api.UserFilterActive
	}
}

func (m Model) rows() []table.Row {
	rows := make([]table.Row, 0, len(m.users))
	for _, u := range m.users {
		status := "active"
		if u.IsDeleted {
			status = "deleted"
		}
		rows = append(rows, table.Row{
			u.ID,
			u.Name,
			u.Phone,
			u.Role,
			status,
			u.CreatedAt.Time.Format("2006-01-02"),
		})
	}
	return rows
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the admin view.
func (m Model) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Users (%s, page %d, %d total)", m.filter, m.page, m.total)
	b.WriteString(m.theme.FormTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	switch {
	case m.busy:
		b.WriteString(m.theme.FormHint.Render("Working..."))
	case m.errText != "":
		b.WriteString(m.theme.ErrorText.Render(m.errText))
	default:
		b.WriteString(m.helpLine())
	}

	return b.String()
}

func (m Model) helpLine() string {
	parts := []string{
		m.theme.ShortcutKey.Render("f") + m.theme.ShortcutDesc.Render(" filter"),
		m.theme.ShortcutKey.Render("d") + m.theme.ShortcutDesc.Render(" deactivate"),
		m.theme.ShortcutKey.Render("r") + m.theme.ShortcutDesc.Render(" restore"),
		m.theme.ShortcutKey.Render("x") + m.theme.ShortcutDesc.Render(" delete"),
		m.theme.ShortcutKey.Render("n/p") + m.theme.ShortcutDesc.Render(" page"),
		m.theme.ShortcutKey.Render("R") + m.theme.ShortcutDesc.Render(" reload"),
	}
	return strings.Join(parts, "  ")
}
