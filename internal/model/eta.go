// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "math"

// =============================================================================
// DURATION HISTORY
// =============================================================================

// Tuning constants for the reply-time estimate.
const (
	// HistoryCapacity bounds the duration history; the oldest sample is
	// evicted first once full.
	HistoryCapacity = 10

	// estimateWindow is how many of the most recent samples feed the
	// moving average.
	estimateWindow = 5

	// DefaultEstimateSeconds is assumed when no exchange has completed yet.
	DefaultEstimateSeconds = 12

	// MinEstimateSeconds floors the estimate; below this the displayed
	// number jumps around too much to be useful.
	MinEstimateSeconds = 3
)

// DurationHistory is a bounded FIFO of round-trip times (whole seconds) of
// past completed exchanges. It only ever feeds the advisory ETA shown while
// a reply is pending - it is never sent to the backend.
type DurationHistory struct {
	samples []int
}

// NewDurationHistory creates an empty history.
func NewDurationHistory() *DurationHistory {
	return &DurationHistory{samples: make([]int, 0, HistoryCapacity)}
}

// Record appends a round-trip sample in seconds, evicting the oldest
// sample when the history is full. Negative samples are clamped to 0.
func (h *DurationHistory) Record(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	h.samples = append(h.samples, seconds)
	if len(h.samples) > HistoryCapacity {
		h.samples = h.samples[len(h.samples)-HistoryCapacity:]
	}
}

// Len returns the number of retained samples.
func (h *DurationHistory) Len() int {
	return len(h.samples)
}

// Samples returns a copy of the retained samples, oldest first.
func (h *DurationHistory) Samples() []int {
	out := make([]int, len(h.samples))
	copy(out, h.samples)
	return out
}

// Estimate returns the expected reply time in seconds: the mean of the most
// recent samples (at most estimateWindow of them), rounded up and clamped
// to MinEstimateSeconds. With no history it falls back to
// DefaultEstimateSeconds.
//
// Callers snapshot this once when a request starts; the estimate is not
// recomputed while the request is in flight.
func (h *DurationHistory) Estimate() int {
	if len(h.samples) == 0 {
		return DefaultEstimateSeconds
	}

	window := h.samples
	if len(window) > estimateWindow {
		window = window[len(window)-estimateWindow:]
	}

	sum := 0
	for _, s := range window {
		sum += s
	}
	avg := float64(sum) / float64(len(window))

	eta := int(math.Ceil(avg))
	if eta < MinEstimateSeconds {
		eta = MinEstimateSeconds
	}
	return eta
}
