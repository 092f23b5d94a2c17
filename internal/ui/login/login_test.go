// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/customchat-tui/internal/api"
	"github.com/jeranaias/customchat-tui/internal/session"
	"github.com/jeranaias/customchat-tui/internal/ui/styles"
)

type stubAuth struct {
	calls  int
	id     string
	result *api.LoginResult
	err    error

	signupReq    *api.SignupRequest
	signupErr    error
	available    bool
	checkedID    string
	foundID      string
	resetToken   string
	confirmToken string
	confirmPass  string
}

func (s *stubAuth) Login(_ context.Context, id, _ string) (*api.LoginResult, error) {
	s.calls++
	s.id = id
	return s.result, s.err
}

func (s *stubAuth) Signup(_ context.Context, req api.SignupRequest) (*api.Account, error) {
	s.signupReq = &req
	if s.signupErr != nil {
		return nil, s.signupErr
	}
	return &api.Account{UserID: 9, ID: req.ID, Name: req.Name}, nil
}

func (s *stubAuth) CheckID(_ context.Context, id string) (bool, error) {
	s.checkedID = id
	return s.available, s.err
}

func (s *stubAuth) FindID(_ context.Context, _, _ string) (string, error) {
	return s.foundID, s.err
}

func (s *stubAuth) PasswordResetStart(_ context.Context, _, _, _ string) (string, error) {
	return s.resetToken, s.err
}

func (s *stubAuth) PasswordResetConfirm(_ context.Context, token, newPassword string) error {
	s.confirmToken = token
	s.confirmPass = newPassword
	return s.err
}

func newTestForm(auth Authenticator) (Model, *session.Manager) {
	sess := session.NewManager(session.NewMemStore())
	return New(styles.NewTheme(), auth, sess), sess
}

func fill(m Model, id, password string) Model {
	m.inputs[fieldID].SetValue(id)
	m.inputs[fieldPassword].SetValue(password)
	m.focused = fieldPassword
	return m
}

func TestSubmitRequiresBothFields(t *testing.T) {
	auth := &stubAuth{}
	m, _ := newTestForm(auth)

	m = fill(m, "jiyoung", "")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil || m.busy {
		t.Error("submit with empty password should be a no-op")
	}
	if auth.calls != 0 {
		t.Error("backend must not be called")
	}
}

func TestSuccessfulLoginPersistsSession(t *testing.T) {
	auth := &stubAuth{result: &api.LoginResult{
		AccessToken: "tok-abc",
		Name:        "Kim Jiyoung",
		UserID:      "7",
		Role:        "user",
	}}
	m, sess := newTestForm(auth)

	m = fill(m, "jiyoung", "secret")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("submit should issue a request command")
	}

	m, cmd = m.Update(cmd().(loginResultMsg))
	if cmd == nil {
		t.Fatal("success should produce a DoneMsg command")
	}
	if _, ok := cmd().(DoneMsg); !ok {
		t.Error("expected DoneMsg after a successful login")
	}

	if got := sess.Token(); got != "tok-abc" {
		t.Errorf("session token = %q", got)
	}
	if auth.id != "jiyoung" {
		t.Errorf("backend saw id %q", auth.id)
	}
	if m.busy {
		t.Error("form should not stay busy after the result")
	}
}

func TestFailedLoginShowsDetail(t *testing.T) {
	auth := &stubAuth{err: errors.New("dial tcp: connection refused")}
	m, sess := newTestForm(auth)

	m = fill(m, "jiyoung", "wrong")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(cmd().(loginResultMsg))

	if m.errText == "" {
		t.Error("failure should surface an error message")
	}
	if sess.Token() != "" {
		t.Error("failed login must not persist a session")
	}
	if !strings.Contains(m.View(), m.errText) {
		t.Error("error text should be rendered")
	}
}

func TestSubmitIgnoredWhileBusy(t *testing.T) {
	auth := &stubAuth{result: &api.LoginResult{AccessToken: "t"}}
	m, _ := newTestForm(auth)

	m = fill(m, "a", "b")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.busy {
		t.Fatal("form should be busy after submit")
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("second submit should be ignored while busy")
	}
}

// =============================================================================
// SIGNUP FORM
// =============================================================================

func fillAll(m Model, values ...string) Model {
	for i, v := range values {
		m.inputs[i].SetValue(v)
	}
	m.focused = len(m.inputs) - 1
	return m
}

func TestSignupSubmitsAllFields(t *testing.T) {
	auth := &stubAuth{}
	m, _ := newTestForm(auth)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	if m.mode != modeSignup {
		t.Fatalf("mode = %v, want signup after ctrl+n", m.mode)
	}
	if !strings.Contains(m.View(), "Create a CustomChat account") {
		t.Error("signup title should render")
	}

	m = fillAll(m, "newkid", "pw123456", "Park Minsu", "2001-03-14", "010-1234-5678")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("signup submit should issue a request command")
	}

	m, _ = m.Update(cmd().(signupResultMsg))
	if auth.signupReq == nil {
		t.Fatal("backend never saw the registration")
	}
	if auth.signupReq.BirthDay != "2001-03-14" || auth.signupReq.Phone != "010-1234-5678" {
		t.Errorf("registration fields mangled: %+v", auth.signupReq)
	}
	if m.mode != modeSignIn {
		t.Error("successful signup should return to sign-in")
	}
	if !strings.Contains(m.View(), "Account created") {
		t.Error("signup success notice should render")
	}
}

func TestSignupIDAvailabilityCheck(t *testing.T) {
	auth := &stubAuth{available: false}
	m, _ := newTestForm(auth)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	m.inputs[0].SetValue("taken")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlK})
	if cmd == nil {
		t.Fatal("ctrl+k should issue a check command")
	}
	m, _ = m.Update(cmd().(checkIDResultMsg))

	if auth.checkedID != "taken" {
		t.Errorf("backend checked %q", auth.checkedID)
	}
	if !strings.Contains(m.View(), "already taken") {
		t.Error("taken ids should surface an error line")
	}
	if m.mode != modeSignup {
		t.Error("availability check must not leave the signup form")
	}
}

func TestEscReturnsToSignIn(t *testing.T) {
	m, _ := newTestForm(&stubAuth{})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if m.mode != modeSignIn {
		t.Errorf("mode = %v, want sign-in after esc", m.mode)
	}
	if len(m.inputs) != len(signInLabels) {
		t.Error("inputs should be rebuilt for the sign-in form")
	}
}

// =============================================================================
// RECOVERY FORMS
// =============================================================================

func TestFindIDShowsRecoveredID(t *testing.T) {
	auth := &stubAuth{foundID: "jiyoung"}
	m, _ := newTestForm(auth)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	if m.mode != modeFindID {
		t.Fatalf("mode = %v, want find-id after ctrl+f", m.mode)
	}

	m = fillAll(m, "Kim Jiyoung", "010-1234-5678")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(cmd().(findIDResultMsg))

	if m.mode != modeSignIn {
		t.Error("successful lookup should return to sign-in")
	}
	if !strings.Contains(m.View(), "Your ID is jiyoung") {
		t.Error("recovered id should render as a notice")
	}
}

func TestPasswordResetTwoStage(t *testing.T) {
	auth := &stubAuth{resetToken: "reset-tok"}
	m, _ := newTestForm(auth)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.mode != modeResetVerify {
		t.Fatalf("mode = %v, want reset verification after ctrl+r", m.mode)
	}

	m = fillAll(m, "jiyoung", "Kim Jiyoung", "010-1234-5678")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(cmd().(resetStartMsg))

	if m.mode != modeResetPassword {
		t.Fatal("verification should advance to the password stage")
	}

	m = fillAll(m, "brand-new-pw")
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(cmd().(resetConfirmMsg))

	if auth.confirmToken != "reset-tok" {
		t.Errorf("confirm used token %q", auth.confirmToken)
	}
	if auth.confirmPass != "brand-new-pw" {
		t.Errorf("confirm used password %q", auth.confirmPass)
	}
	if m.mode != modeSignIn {
		t.Error("a finished reset should return to sign-in")
	}
	if m.resetToken != "" {
		t.Error("the reset token must not outlive the flow")
	}
}

func TestResetVerifyFailureSurfacesDetail(t *testing.T) {
	auth := &stubAuth{err: errors.New("dial tcp: connection refused")}
	m, _ := newTestForm(auth)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = fillAll(m, "jiyoung", "Kim", "010")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(cmd().(resetStartMsg))

	if m.mode != modeResetVerify {
		t.Error("a failed verification should stay on the form")
	}
	if m.errText == "" {
		t.Error("failure should surface an error message")
	}
}
