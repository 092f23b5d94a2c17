// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package profile

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/customchat-tui/internal/api"
	"github.com/jeranaias/customchat-tui/internal/ui/styles"
)

type stubSource struct {
	calls   int
	account *api.Account
	err     error
}

func (s *stubSource) MyPage(_ context.Context) (*api.Account, error) {
	s.calls++
	return s.account, s.err
}

func TestInitLoadsAccount(t *testing.T) {
	src := &stubSource{account: &api.Account{
		UserID:   7,
		ID:       "jiyoung",
		Name:     "Kim Jiyoung",
		BirthDay: "1999-01-02",
		Phone:    "010-1234-5678",
	}}

	m := New(styles.NewTheme(), src)
	msg := m.Init()()
	m, _ = m.Update(msg)

	if src.calls != 1 {
		t.Errorf("calls = %d", src.calls)
	}
	got := m.View()
	for _, want := range []string{"jiyoung", "Kim Jiyoung", "1999-01-02", "010-1234-5678"} {
		if !strings.Contains(got, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestReloadShortcut(t *testing.T) {
	src := &stubSource{account: &api.Account{ID: "jiyoung"}}
	m := New(styles.NewTheme(), src)
	m, _ = m.Update(m.Init()().(loadedMsg))

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("R")})
	if cmd == nil {
		t.Fatal("R should issue a reload command")
	}
	if _, ok := cmd().(loadedMsg); !ok {
		t.Error("reload should produce a loadedMsg")
	}
}

func TestLoadFailureSurfaces(t *testing.T) {
	src := &stubSource{err: api.ErrUnauthorized}
	m := New(styles.NewTheme(), src)
	m, _ = m.Update(m.Init()().(loadedMsg))

	if m.errText == "" {
		t.Error("failure should surface an error message")
	}
	if !strings.Contains(m.View(), m.errText) {
		t.Error("error text should be rendered")
	}
}
