// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/customchat-tui/internal/ui/styles"
)

// =============================================================================
// WAIT INDICATOR
// =============================================================================

// WaitIndicator is the transient placeholder shown while a chat request is
// outstanding. It combines a spinner with a live elapsed counter and the
// estimate snapshotted at request start.
type WaitIndicator struct {
	spinner spinner.Model

	elapsed  int
	estimate int
	active   bool
}

// NewWaitIndicator creates an inactive wait indicator.
func NewWaitIndicator() WaitIndicator {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	return WaitIndicator{spinner: s}
}

// Start activates the indicator with a fresh elapsed counter and the
// estimate to display. Returns the command that drives the spinner frames.
func (w *WaitIndicator) Start(estimateSecs int) tea.Cmd {
	w.active = true
	w.elapsed = 0
	w.estimate = estimateSecs
	return w.spinner.Tick
}

// Stop deactivates the indicator and clears its display state.
func (w *WaitIndicator) Stop() {
	w.active = false
	w.elapsed = 0
	w.estimate = 0
}

// SetElapsed updates the displayed elapsed seconds.
func (w *WaitIndicator) SetElapsed(secs int) {
	w.elapsed = secs
}

// Active reports whether the indicator is currently shown.
func (w *WaitIndicator) Active() bool {
	return w.active
}

// Update advances the spinner animation.
func (w WaitIndicator) Update(msg tea.Msg) (WaitIndicator, tea.Cmd) {
	if !w.active {
		return w, nil
	}
	var cmd tea.Cmd
	w.spinner, cmd = w.spinner.Update(msg)
	return w, cmd
}

// View renders the placeholder line, or nothing when inactive.
func (w WaitIndicator) View() string {
	if !w.active {
		return ""
	}

	text := fmt.Sprintf("generating a reply… %ds", w.elapsed)
	if w.estimate > 0 {
		text += fmt.Sprintf(" / ~%ds", w.estimate)
	}

	line := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true).
		Render(text)

	return w.spinner.View() + " " + line
}
