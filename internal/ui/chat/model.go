// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/customchat-tui/internal/api"
	"github.com/jeranaias/customchat-tui/internal/model"
	"github.com/jeranaias/customchat-tui/internal/ui/components"
	"github.com/jeranaias/customchat-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady   State = iota // Ready for input
	StateSending              // One request outstanding
)

// Sender issues a single chat exchange against the backend.
// *api.Client satisfies it.
type Sender interface {
	Chat(ctx context.Context, message string, thread api.ThreadID) (*api.ChatTurn, error)
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state State

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Conversation
	transcript *model.Transcript
	history    *model.DurationHistory
	thread     api.ThreadID

	// Request timer. All fields are cleared when the request settles;
	// tickGen is bumped instead so stale ticks identify themselves.
	startedAt time.Time
	elapsed   int
	estimate  int
	tickGen   int

	// Backend
	sender Sender

	// UI components
	viewport viewport.Model
	input    textinput.Model
	wait     components.WaitIndicator
	markdown *glamour.TermRenderer

	statusErr string
}

// New creates a new chat model.
func New(theme *styles.Theme, sender Sender, markdown *glamour.TermRenderer) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a message..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	return Model{
		state:      StateReady,
		theme:      theme,
		transcript: model.NewTranscript(),
		history:    model.NewDurationHistory(),
		sender:     sender,
		viewport:   vp,
		input:      ti,
		wait:       components.NewWaitIndicator(),
		markdown:   markdown,
	}
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Sending reports whether a request is outstanding.
func (m Model) Sending() bool {
	return m.state == StateSending
}

// Transcript exposes the conversation transcript.
func (m Model) Transcript() *model.Transcript {
	return m.transcript
}

// SetSize updates the layout dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	// Input row, its border, and the status line sit below the viewport.
	vh := height - 4
	if vh < 3 {
		vh = 3
	}
	m.viewport.Height = vh
	m.refreshViewport()
}
