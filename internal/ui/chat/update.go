// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/customchat-tui/internal/api"
	"github.com/jeranaias/customchat-tui/internal/model"
)

// Update handles messages for the chat view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			return m.submit()
		}

	case tickMsg:
		return m.handleTick(msg)

	case chatReplyMsg:
		return m.handleReply(msg)

	case chatFailedMsg:
		return m.handleFailure(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.wait, cmd = m.wait.Update(msg)
	cmds = append(cmds, cmd)
	if m.state == StateSending {
		// Keep the placeholder's spinner frame current.
		m.refreshViewport()
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// =============================================================================
// REQUEST LIFECYCLE
// =============================================================================

// submit starts a new exchange. Empty input and input submitted while a
// request is already outstanding are ignored.
func (m Model) submit() (Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.state == StateSending {
		return m, nil
	}

	m.transcript.Append(model.RoleUser, text)
	m.input.Reset()
	m.statusErr = ""

	// The estimate is snapshotted here and held fixed for the whole
	// request. It is advisory display text only.
	m.state = StateSending
	m.estimate = m.history.Estimate()
	m.elapsed = 0
	m.startedAt = time.Now()
	m.tickGen++

	m.refreshViewport()

	return m, tea.Batch(
		m.sendCmd(text, m.thread),
		tickCmd(m.tickGen),
		m.wait.Start(m.estimate),
	)
}

// handleTick advances the elapsed counter. Ticks from a settled request
// carry a stale generation and are dropped without rescheduling.
func (m Model) handleTick(msg tickMsg) (Model, tea.Cmd) {
	if m.state != StateSending || msg.Gen != m.tickGen {
		return m, nil
	}
	m.elapsed++
	m.wait.SetElapsed(m.elapsed)
	m.refreshViewport()
	return m, tickCmd(msg.Gen)
}

func (m Model) handleReply(msg chatReplyMsg) (Model, tea.Cmd) {
	if m.state != StateSending {
		return m, nil
	}

	m.thread = msg.Turn.ThreadID
	m.transcript.Append(model.RoleAssistant, msg.Turn.Reply)
	m.history.Record(int(math.Round(time.Since(m.startedAt).Seconds())))

	m.settle()
	return m, nil
}

// handleFailure reconciles a failed request. The thread identifier and
// prior transcript stay intact, and no duration sample is recorded.
func (m Model) handleFailure(msg chatFailedMsg) (Model, tea.Cmd) {
	if m.state != StateSending {
		return m, nil
	}

	m.transcript.Append(model.RoleAssistant, apologyText)
	m.statusErr = api.Detail(msg.Err)

	m.settle()
	return m, nil
}

// settle tears down the request timer. Bumping tickGen invalidates any
// tick already in flight.
func (m *Model) settle() {
	m.state = StateReady
	m.tickGen++
	m.elapsed = 0
	m.estimate = 0
	m.startedAt = time.Time{}
	m.wait.Stop()
	m.refreshViewport()
}

// =============================================================================
// COMMANDS
// =============================================================================

func (m Model) sendCmd(text string, thread api.ThreadID) tea.Cmd {
	sender := m.sender
	return func() tea.Msg {
		turn, err := sender.Chat(context.Background(), text, thread)
		if err != nil {
			return chatFailedMsg{Err: err}
		}
		return chatReplyMsg{Turn: turn}
	}
}

func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{Gen: gen}
	})
}
