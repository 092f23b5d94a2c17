// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login provides the sign-in view for the customchat TUI, plus
// the account forms reachable from it: signup, find-id, and password
// reset.
package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/customchat-tui/internal/api"
	"github.com/jeranaias/customchat-tui/internal/session"
	"github.com/jeranaias/customchat-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// DoneMsg signals that login succeeded and the session is persisted.
type DoneMsg struct{}

// loginResultMsg carries the backend response for one sign-in attempt.
type loginResultMsg struct {
	result *api.LoginResult
	err    error
}

// signupResultMsg carries the backend response for one registration.
type signupResultMsg struct {
	account *api.Account
	err     error
}

// checkIDResultMsg reports whether the typed id is still available.
type checkIDResultMsg struct {
	id        string
	available bool
	err       error
}

// findIDResultMsg carries the recovered login id.
type findIDResultMsg struct {
	id  string
	err error
}

// resetStartMsg carries the short-lived reset token after identity
// verification.
type resetStartMsg struct {
	token string
	err   error
}

// resetConfirmMsg reports the final password change.
type resetConfirmMsg struct {
	err error
}

// Authenticator is the backend surface the forms need. *api.Client
// satisfies it.
type Authenticator interface {
	Login(ctx context.Context, id, password string) (*api.LoginResult, error)
	Signup(ctx context.Context, req api.SignupRequest) (*api.Account, error)
	CheckID(ctx context.Context, id string) (bool, error)
	FindID(ctx context.Context, name, phone string) (string, error)
	PasswordResetStart(ctx context.Context, id, name, phone string) (string, error)
	PasswordResetConfirm(ctx context.Context, resetToken, newPassword string) error
}

// =============================================================================
// MODEL
// =============================================================================

// formMode selects which account form is on screen. Sign-in is the
// default; the others are reached by shortcut and return to sign-in on
// esc or on success.
type formMode int

const (
	modeSignIn formMode = iota
	modeSignup
	modeFindID
	modeResetVerify
	modeResetPassword
)

// Field indices for modeSignIn. The other modes lay out their inputs in
// the order of their label slices below.
const (
	fieldID = iota
	fieldPassword
)

var (
	signInLabels      = []string{"ID", "Password"}
	signupLabels      = []string{"ID", "Password", "Name", "Birth date", "Phone"}
	findIDLabels      = []string{"Name", "Phone"}
	resetVerifyLabels = []string{"ID", "Name", "Phone"}
	resetPassLabels   = []string{"New password"}
)

// Model is the Bubble Tea model for the login and account forms.
type Model struct {
	theme   *styles.Theme
	client  Authenticator
	session *session.Manager

	mode    formMode
	inputs  []textinput.Model
	focused int

	// resetToken holds the verification result between the two password
	// reset stages.
	resetToken string

	busy    bool
	errText string
	notice  string

	width  int
	height int
}

// New creates the sign-in form.
func New(theme *styles.Theme, client Authenticator, sess *session.Manager) Model {
	m := Model{
		theme:   theme,
		client:  client,
		session: sess,
	}
	m.enterMode(modeSignIn)
	return m
}

// Init initializes the form.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the layout dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// labels returns the field labels for the active mode.
func (m Model) labels() []string {
	switch m.mode {
	case modeSignup:
		return signupLabels
	case modeFindID:
		return findIDLabels
	case modeResetVerify:
		return resetVerifyLabels
	case modeResetPassword:
		return resetPassLabels
	default:
		return signInLabels
	}
}

// enterMode rebuilds the input set for a form switch. Passwords always
// echo masked; the birth date field carries a format placeholder.
func (m *Model) enterMode(mode formMode) {
	m.mode = mode
	m.focused = 0
	m.errText = ""
	m.busy = false

	labels := m.labels()
	m.inputs = make([]textinput.Model, len(labels))
	for i, label := range labels {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = label
		in.CharLimit = 64
		switch label {
		case "Password", "New password":
			in.CharLimit = 128
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		case "Birth date":
			in.Placeholder = "YYYY-MM-DD"
		}
		m.inputs[i] = in
	}
	m.inputs[0].Focus()
}

// Update handles messages for the login and account forms.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}

	case loginResultMsg:
		return m.handleLoginResult(msg)
	case signupResultMsg:
		return m.handleSignupResult(msg)
	case checkIDResultMsg:
		return m.handleCheckIDResult(msg)
	case findIDResultMsg:
		return m.handleFindIDResult(msg)
	case resetStartMsg:
		return m.handleResetStart(msg)
	case resetConfirmMsg:
		return m.handleResetConfirm(msg)
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "down":
		m.setFocus((m.focused + 1) % len(m.inputs))
		return m, nil, true
	case "shift+tab", "up":
		m.setFocus((m.focused + len(m.inputs) - 1) % len(m.inputs))
		return m, nil, true
	case "enter":
		if m.focused < len(m.inputs)-1 {
			m.setFocus(m.focused + 1)
			return m, nil, true
		}
		next, cmd := m.submit()
		return next, cmd, true
	case "esc":
		if m.mode != modeSignIn {
			m.enterMode(modeSignIn)
			return m, nil, true
		}
	case "ctrl+n":
		if m.mode == modeSignIn {
			m.enterMode(modeSignup)
			m.notice = ""
			return m, nil, true
		}
	case "ctrl+f":
		if m.mode == modeSignIn {
			m.enterMode(modeFindID)
			m.notice = ""
			return m, nil, true
		}
	case "ctrl+r":
		if m.mode == modeSignIn {
			m.enterMode(modeResetVerify)
			m.notice = ""
			return m, nil, true
		}
	case "ctrl+k":
		if m.mode == modeSignup {
			next, cmd := m.checkID()
			return next, cmd, true
		}
	}
	return m, nil, false
}

func (m *Model) setFocus(idx int) {
	m.inputs[m.focused].Blur()
	m.focused = idx
	m.inputs[m.focused].Focus()
}

// value returns the trimmed value of input i. Password fields keep
// their whitespace.
func (m Model) value(i int) string {
	labels := m.labels()
	v := m.inputs[i].Value()
	if labels[i] == "Password" || labels[i] == "New password" {
		return v
	}
	return strings.TrimSpace(v)
}

// =============================================================================
// SUBMIT PATHS
// =============================================================================

// submit fires the active form's request. One attempt at a time, and
// only once every field is filled.
func (m Model) submit() (Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	for i := range m.inputs {
		if m.value(i) == "" {
			return m, nil
		}
	}

	m.busy = true
	m.errText = ""
	m.notice = ""
	client := m.client

	switch m.mode {
	case modeSignup:
		req := api.SignupRequest{
			ID:       m.value(0),
			Password: m.value(1),
			Name:     m.value(2),
			BirthDay: m.value(3),
			Phone:    m.value(4),
		}
		return m, func() tea.Msg {
			account, err := client.Signup(context.Background(), req)
			return signupResultMsg{account: account, err: err}
		}

	case modeFindID:
		name, phone := m.value(0), m.value(1)
		return m, func() tea.Msg {
			id, err := client.FindID(context.Background(), name, phone)
			return findIDResultMsg{id: id, err: err}
		}

	case modeResetVerify:
		id, name, phone := m.value(0), m.value(1), m.value(2)
		return m, func() tea.Msg {
			token, err := client.PasswordResetStart(context.Background(), id, name, phone)
			return resetStartMsg{token: token, err: err}
		}

	case modeResetPassword:
		token, password := m.resetToken, m.value(0)
		return m, func() tea.Msg {
			return resetConfirmMsg{err: client.PasswordResetConfirm(context.Background(), token, password)}
		}

	default:
		id, password := m.value(fieldID), m.value(fieldPassword)
		return m, func() tea.Msg {
			result, err := client.Login(context.Background(), id, password)
			return loginResultMsg{result: result, err: err}
		}
	}
}

// checkID asks the backend whether the typed id is taken, without
// submitting the rest of the signup form.
func (m Model) checkID() (Model, tea.Cmd) {
	id := m.value(0)
	if id == "" || m.busy {
		return m, nil
	}

	m.busy = true
	m.errText = ""
	client := m.client
	return m, func() tea.Msg {
		available, err := client.CheckID(context.Background(), id)
		return checkIDResultMsg{id: id, available: available, err: err}
	}
}

// =============================================================================
// RESULT HANDLERS
// =============================================================================

func (m Model) handleLoginResult(msg loginResultMsg) (Model, tea.Cmd) {
	m.busy = false

	if msg.err != nil {
		m.errText = api.Detail(msg.err)
		return m, nil
	}

	res := msg.result
	if err := m.session.Login(res.AccessToken, res.Name, res.Role, res.UserID.String()); err != nil {
		m.errText = "Could not save your session. Please try again."
		return m, nil
	}

	m.inputs[fieldPassword].Reset()
	return m, func() tea.Msg { return DoneMsg{} }
}

func (m Model) handleSignupResult(msg signupResultMsg) (Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		m.errText = api.Detail(msg.err)
		return m, nil
	}

	m.enterMode(modeSignIn)
	m.notice = "Account created. Sign in with your new ID."
	return m, nil
}

func (m Model) handleCheckIDResult(msg checkIDResultMsg) (Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		m.errText = api.Detail(msg.err)
		return m, nil
	}

	if msg.available {
		m.notice = "ID " + msg.id + " is available."
		m.errText = ""
	} else {
		m.notice = ""
		m.errText = "ID " + msg.id + " is already taken."
	}
	return m, nil
}

func (m Model) handleFindIDResult(msg findIDResultMsg) (Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		m.errText = api.Detail(msg.err)
		return m, nil
	}

	m.enterMode(modeSignIn)
	m.notice = "Your ID is " + msg.id + "."
	return m, nil
}

func (m Model) handleResetStart(msg resetStartMsg) (Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		m.errText = api.Detail(msg.err)
		return m, nil
	}

	m.resetToken = msg.token
	m.enterMode(modeResetPassword)
	return m, nil
}

func (m Model) handleResetConfirm(msg resetConfirmMsg) (Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		m.errText = api.Detail(msg.err)
		return m, nil
	}

	m.resetToken = ""
	m.enterMode(modeSignIn)
	m.notice = "Password updated. Sign in with the new one."
	return m, nil
}

// =============================================================================
// VIEW
// =============================================================================

func (m Model) title() string {
	switch m.mode {
	case modeSignup:
		return "Create a CustomChat account"
	case modeFindID:
		return "Find your ID"
	case modeResetVerify:
		return "Reset password: verify identity"
	case modeResetPassword:
		return "Reset password: choose a new one"
	default:
		return "Sign in to CustomChat"
	}
}

func (m Model) hint() string {
	switch m.mode {
	case modeSignup:
		return "Enter to submit, ^K to check ID, Esc to cancel"
	case modeFindID, modeResetVerify, modeResetPassword:
		return "Enter to submit, Esc to cancel"
	default:
		return "Enter to submit, ^N signup, ^F find ID, ^R reset password"
	}
}

// View renders the active form.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.FormTitle.Render(m.title()))
	b.WriteString("\n\n")

	labels := m.labels()
	for i, input := range m.inputs {
		style := m.theme.FormField
		if i == m.focused {
			style = m.theme.FormFocused
		}
		row := lipgloss.JoinHorizontal(lipgloss.Center,
			m.theme.FormLabel.Render(labels[i]),
			style.Render(input.View()),
		)
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.busy:
		b.WriteString(m.theme.FormHint.Render("Working..."))
	case m.errText != "":
		b.WriteString(m.theme.FormError.Render(m.errText))
	case m.notice != "":
		b.WriteString(m.theme.SuccessText.Render(m.notice))
	default:
		b.WriteString(m.theme.FormHint.Render(m.hint()))
	}

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
	}
	return b.String()
}
